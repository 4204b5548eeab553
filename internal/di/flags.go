package di

import (
	"flag"
	"os"
)

// Flags contains the command line flags of the news agent
type Flags struct {
	ConfigFile string
	EnvFile    string
	Provider   string
	DryRun     bool
	Verbose    bool
	JSONLog    bool
}

// ParseFlags parses command line flags and returns a Flags struct
func ParseFlags() (*Flags, error) {
	return parseFlags(flag.CommandLine, os.Args[1:])
}

func parseFlags(fs *flag.FlagSet, args []string) (*Flags, error) {
	flags := &Flags{}

	fs.StringVar(&flags.ConfigFile, "config", "", "Path to config file (searched in default locations if empty)")
	fs.StringVar(&flags.EnvFile, "env-file", ".env", "Dotenv file consulted for unset variables")
	fs.StringVar(&flags.Provider, "provider", "", "LLM provider (openai, gemini, bedrock), overrides llm.provider")
	fs.BoolVar(&flags.DryRun, "dry-run", false, "Print the email instead of sending it")
	fs.BoolVar(&flags.Verbose, "verbose", false, "Enable verbose logging")
	fs.BoolVar(&flags.JSONLog, "json-log", false, "Output logs in JSON format")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return flags, nil
}

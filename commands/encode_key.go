package commands

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/uhppoted/uhppoted-lambda-sheets/actions"
	"github.com/uhppoted/uhppoted-lambda-sheets/auth"
)

var EncodeKeyCmd = EncodeKey{
	credentials:  DEFAULT_CREDENTIALS,
	file:         "",
	defaultEmail: "",
}

// EncodeKey converts a service account credentials.json file into the environment variables
// expected by the Lambda function, with the private key base64 encoded.
type EncodeKey struct {
	command
	credentials  string
	file         string
	defaultEmail string
}

func (cmd *EncodeKey) Name() string {
	return "encode-key"
}

func (cmd *EncodeKey) Description() string {
	return "Converts a service account credentials.json file to Lambda environment variables"
}

func (cmd *EncodeKey) Usage() string {
	return "--credentials <file> [--file <.env file>] [--default-email <address>]"
}

func (cmd *EncodeKey) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s encode-key [options] --credentials <file>\n", APP)
	fmt.Println()
	fmt.Println("  Converts a Google service account credentials.json file to the environment variables used by the")
	fmt.Println("  Lambda function. The private key is base64 encoded so that it fits in a single line variable.")
	fmt.Println("  The variables are printed in .env format, or written to a .env file if --file is given.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    uhppoted-lambda-sheets encode-key --credentials "credentials.json" --file .env --default-email "editors@example.com"`)
	fmt.Println()
}

func (cmd *EncodeKey) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("encode-key")

	flagset.StringVar(&cmd.credentials, "credentials", cmd.credentials, "Path for the service account 'credentials.json' file")
	flagset.StringVar(&cmd.file, "file", cmd.file, "Writes the variables to a .env file instead of stdout")
	flagset.StringVar(&cmd.defaultEmail, "default-email", cmd.defaultEmail, "Default editor e-mail address for create_sheet")

	return flagset
}

func (cmd *EncodeKey) Execute(args ...any) error {
	if strings.TrimSpace(cmd.credentials) == "" {
		return fmt.Errorf("--credentials is a required option")
	}

	env, err := encode(cmd.credentials, cmd.defaultEmail)
	if err != nil {
		return err
	}

	if strings.TrimSpace(cmd.file) == "" {
		s, err := godotenv.Marshal(env)
		if err != nil {
			return err
		}

		fmt.Println(s)
		return nil
	}

	if err := godotenv.Write(env, cmd.file); err != nil {
		return fmt.Errorf("error writing %v (%w)", cmd.file, err)
	}

	if err := os.Chmod(cmd.file, 0600); err != nil {
		return err
	}

	fmt.Printf("Wrote service account environment variables to %v\n", cmd.file)

	return nil
}

// encode reads a credentials.json file and returns the environment variables for it, checking
// that they load back to the same service account.
func encode(file string, defaultEmail string) (map[string]string, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	account := auth.ServiceAccount{}
	if err := json.Unmarshal(b, &account); err != nil {
		return nil, fmt.Errorf("invalid credentials file %v (%w)", file, err)
	}

	env := account.Environment()
	reloaded, err := auth.Load(func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	})

	if err != nil {
		return nil, fmt.Errorf("incomplete credentials file %v (%w)", file, err)
	} else if *reloaded != account {
		return nil, fmt.Errorf("service account in %v does not survive encoding", file)
	}

	if email := strings.TrimSpace(defaultEmail); email != "" {
		env[actions.DEFAULT_EMAIL] = email
	}

	return env, nil
}

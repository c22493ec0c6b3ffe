package notify

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// Environment variables holding the sender account.
const (
	EnvAddress  = "EMAIL_ADDRESS"
	EnvPassword = "EMAIL_PASSWORD"
)

// Credentials identify the sending account.
type Credentials struct {
	Address  string
	Password string
}

// LoadCredentials loads a .env file from the working directory if one
// exists, then reads the sender account from the environment. SES needs only
// the address; SMTP needs both. Missing values are reported together as a
// *types.ConfigurationError.
func LoadCredentials(transport string) (Credentials, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Credentials{}, err
	}

	c := Credentials{
		Address:  os.Getenv(EnvAddress),
		Password: os.Getenv(EnvPassword),
	}
	var missing []string
	if c.Address == "" {
		missing = append(missing, EnvAddress)
	}
	if transport != types.TransportSES && c.Password == "" {
		missing = append(missing, EnvPassword)
	}
	if len(missing) > 0 {
		return Credentials{}, &types.ConfigurationError{Missing: missing}
	}
	return c, nil
}

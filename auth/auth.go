package auth

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const (
	SHEETS = sheets.SpreadsheetsScope
	DRIVE  = drive.DriveFileScope
)

// ErrConfiguration is the cause of every error arising from a missing or invalid service
// account environment variable.
var ErrConfiguration = errors.New("configuration error")

// ServiceAccount holds the fields of a Google service account key. The JSON field names are
// also the names of the environment variables the account is loaded from.
type ServiceAccount struct {
	Type                    string `json:"type" validate:"required"`
	ProjectID               string `json:"project_id" validate:"required"`
	PrivateKeyID            string `json:"private_key_id" validate:"required"`
	PrivateKey              string `json:"private_key" validate:"required"`
	ClientEmail             string `json:"client_email" validate:"required"`
	ClientID                string `json:"client_id" validate:"required"`
	AuthURI                 string `json:"auth_uri" validate:"required"`
	TokenURI                string `json:"token_uri" validate:"required"`
	AuthProviderX509CertURL string `json:"auth_provider_x509_cert_url" validate:"required"`
	ClientX509CertURL       string `json:"client_x509_cert_url" validate:"required"`
}

// Credentials are the scoped client options for a single invocation.
type Credentials struct {
	options []option.ClientOption
}

var validate = func() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}()

// Authenticate builds credentials for the service account configured in the process environment,
// restricted to the requested scopes.
func Authenticate(ctx context.Context, scopes ...string) (*Credentials, error) {
	account, err := Load(os.LookupEnv)
	if err != nil {
		return nil, err
	}

	return account.Credentials(ctx, scopes...)
}

// NewCredentials wraps an existing set of client options, e.g. for an emulator or a test server.
func NewCredentials(options ...option.ClientOption) *Credentials {
	return &Credentials{
		options: options,
	}
}

func (c *Credentials) ClientOptions() []option.ClientOption {
	return c.options
}

// Load reads the service account from the key/value lookup function. The private key is
// expected to be base64 encoded and is returned decoded.
func Load(lookup func(string) (string, bool)) (*ServiceAccount, error) {
	get := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}

	account := ServiceAccount{
		Type:                    get("type"),
		ProjectID:               get("project_id"),
		PrivateKeyID:            get("private_key_id"),
		PrivateKey:              get("private_key"),
		ClientEmail:             get("client_email"),
		ClientID:                get("client_id"),
		AuthURI:                 get("auth_uri"),
		TokenURI:                get("token_uri"),
		AuthProviderX509CertURL: get("auth_provider_x509_cert_url"),
		ClientX509CertURL:       get("client_x509_cert_url"),
	}

	if err := validate.Struct(account); err != nil {
		var invalid validator.ValidationErrors
		if !errors.As(err, &invalid) {
			return nil, errors.Wrap(ErrConfiguration, err.Error())
		}

		missing := []string{}
		for _, e := range invalid {
			missing = append(missing, e.Field())
		}

		return nil, errors.Wrapf(ErrConfiguration, "missing environment variables %v", strings.Join(missing, ","))
	}

	key, err := Decode(account.PrivateKey)
	if err != nil {
		return nil, errors.Wrapf(ErrConfiguration, "invalid private_key encoding (%v)", err)
	}

	account.PrivateKey = key

	return &account, nil
}

// Credentials builds the Google credentials for the service account. No token is requested until
// the first API call.
func (a ServiceAccount) Credentials(ctx context.Context, scopes ...string) (*Credentials, error) {
	b, err := json.Marshal(a)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal service account")
	}

	credentials, err := google.CredentialsFromJSON(ctx, b, scopes...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read credentials from service account")
	}

	client := oauth2.NewClient(ctx, credentials.TokenSource)

	return NewCredentials(option.WithHTTPClient(client)), nil
}

// Environment returns the service account as environment variables, with the private key
// base64 encoded. The inverse of Load.
func (a ServiceAccount) Environment() map[string]string {
	return map[string]string{
		"type":                        a.Type,
		"project_id":                  a.ProjectID,
		"private_key_id":              a.PrivateKeyID,
		"private_key":                 Encode(a.PrivateKey),
		"client_email":                a.ClientEmail,
		"client_id":                   a.ClientID,
		"auth_uri":                    a.AuthURI,
		"token_uri":                   a.TokenURI,
		"auth_provider_x509_cert_url": a.AuthProviderX509CertURL,
		"client_x509_cert_url":        a.ClientX509CertURL,
	}
}

// String omits the private key.
func (a ServiceAccount) String() string {
	return fmt.Sprintf("%v (project:%v key:%v)", a.ClientEmail, a.ProjectID, a.PrivateKeyID)
}

// Encode converts PEM key material to a form that survives a single line environment variable.
func Encode(key string) string {
	return base64.StdEncoding.EncodeToString([]byte(key))
}

func Decode(encoded string) (string, error) {
	b, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", err
	}

	return string(b), nil
}

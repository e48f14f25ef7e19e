// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/graph-upn-lookup/src/config"
	"github.com/H0llyW00dzZ/graph-upn-lookup/src/internal/graph"
	"github.com/H0llyW00dzZ/graph-upn-lookup/src/internal/helper/httpclient"
	"github.com/H0llyW00dzZ/graph-upn-lookup/src/internal/identity/credential"
	"github.com/H0llyW00dzZ/graph-upn-lookup/src/internal/identity/token"
	"github.com/H0llyW00dzZ/graph-upn-lookup/src/internal/lookup"
	"github.com/H0llyW00dzZ/graph-upn-lookup/src/internal/report"
	"github.com/H0llyW00dzZ/graph-upn-lookup/src/logger"
)

var (
	// ErrCertFileRequired indicates that no certificate file was supplied by
	// flag, environment or prompt.
	ErrCertFileRequired = errors.New("cli: certificate file is required")

	// ErrUsersFileRequired indicates that no name list file was supplied.
	ErrUsersFileRequired = errors.New("cli: users file is required")
)

var (
	certFile   string
	keyFile    string
	password   string
	usersFile  string
	outputFile string
	configFile string
	jsonLogs   bool
)

// OperationPerformed reports whether a lookup batch ran to completion.
// OperationPerformedSuccessfully additionally requires the export to have
// been written. Consulted by the entrypoint for its closing messages.
var (
	OperationPerformed             bool
	OperationPerformedSuccessfully bool
)

// Environment fallbacks for non-interactive runs.
const (
	envCertPath = "AZURE_CERT_PATH"
	envCertPass = "AZURE_CERT_PASSWORD"
)

// keyFileSuffix pairs "<name>_cert.pem" with "<name>_key.pem" when no
// explicit key file is given.
const (
	certFileSuffix = "_cert.pem"
	keyFileSuffix  = "_key.pem"
)

// Execute runs the root command and returns any error that occurs during execution.
//
// Parameters:
//   - ctx: Context for cancellation; Ctrl+C cancels in-flight lookups
//   - version: Application version string
//   - log: Destination for progress output
//
// Returns:
//   - error: Any error encountered while authenticating, querying or exporting
func Execute(ctx context.Context, version string, log logger.Logger) error {
	rootCmd := &cobra.Command{
		Use:           "graph-upn-lookup [CERT_FILE]",
		Short:         "Directory UPN lookup with certificate-based authentication",
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				certFile = args[0]
			}
			return runLookup(cmd.Context(), version, log)
		},
	}

	rootCmd.Flags().StringVarP(&certFile, "cert", "c", "", "certificate file (PEM pair, combined PEM, or PFX/P12)")
	rootCmd.Flags().StringVarP(&keyFile, "key", "k", "", "separate private key file (default: <name>_key.pem next to <name>_cert.pem)")
	rootCmd.Flags().StringVarP(&password, "password", "p", "", "certificate or key password (default: $"+envCertPass+", then prompt)")
	rootCmd.Flags().StringVarP(&usersFile, "users-file", "u", "", "pipe-delimited name list file")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "upn_lookup_results.csv", "output CSV file")
	rootCmd.Flags().StringVar(&configFile, "config", "", "config file (default: $GRAPH_LOOKUP_CONFIG_FILE)")
	rootCmd.Flags().BoolVar(&jsonLogs, "json-logs", false, "emit progress as JSON lines on stderr")

	return rootCmd.ExecuteContext(ctx)
}

// runLookup drives the whole pipeline: load config and credential, acquire a
// token, run the batch, write the export and print a summary.
func runLookup(ctx context.Context, version string, log logger.Logger) error {
	if jsonLogs {
		log = logger.NewJSONLogger(os.Stderr)
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	cred, err := loadCredential(log)
	if err != nil {
		return err
	}
	log.Printf("Certificate thumbprint: %s", cred.Thumbprint)

	keys, err := loadKeys()
	if err != nil {
		return err
	}
	log.Printf("Loaded %d names", len(keys))

	hc := httpclient.NewConfig(version)
	hc.Timeout = time.Duration(cfg.Timeout) * time.Second

	provider := token.NewProvider(token.Config{
		TenantID:  cfg.TenantID,
		ClientID:  cfg.ClientID,
		Authority: cfg.Authority,
		Scopes:    cfg.Scopes,
	}, hc)

	tok, err := provider.Acquire(ctx, cred)
	if err != nil {
		return err
	}
	log.Println("Token acquired")

	engine := lookup.NewEngine(graph.NewClient(cfg.GraphBaseURL, hc), log)
	rep := engine.Run(ctx, tok.Bearer, keys)
	OperationPerformed = true

	out, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("cli: creating output file: %w", err)
	}
	defer out.Close()

	if err := report.WriteCSV(out, rep); err != nil {
		return err
	}

	log.Println(report.RenderSummary(rep))
	log.Printf("Results written to %s", outputFile)
	OperationPerformedSuccessfully = true
	return nil
}

// loadCredential resolves the certificate path, password and optional key
// file, then parses them into a normalized credential.
//
// Path precedence: --cert flag, then the environment, then an interactive
// prompt. Password precedence mirrors it, with the prompt reserved for
// PFX/P12 archives since PEM keys are usually unencrypted.
func loadCredential(log logger.Logger) (*credential.Credential, error) {
	path := certFile
	if path == "" {
		path = os.Getenv(envCertPath)
	}
	if path == "" {
		path = prompt(log, "Certificate file path: ")
	}
	if path == "" {
		return nil, ErrCertFileRequired
	}

	certData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cli: reading certificate file: %w", err)
	}

	pass := password
	if pass == "" {
		pass = os.Getenv(envCertPass)
	}
	if pass == "" && isArchive(path) {
		pass = prompt(log, "Certificate password (empty for none): ")
	}

	keyData, err := loadKeyData(path)
	if err != nil {
		return nil, err
	}

	return credential.NewLoader().Load(certData, pass, keyData)
}

// loadKeyData reads the explicit key file, or the conventional sibling of a
// "_cert.pem" file when one exists. No key file means the certificate buffer
// must carry the key itself.
func loadKeyData(certPath string) ([]byte, error) {
	path := keyFile
	if path == "" && strings.HasSuffix(certPath, certFileSuffix) {
		sibling := strings.TrimSuffix(certPath, certFileSuffix) + keyFileSuffix
		if _, err := os.Stat(sibling); err == nil {
			path = sibling
		}
	}
	if path == "" {
		return nil, nil
	}

	keyData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cli: reading key file: %w", err)
	}
	return keyData, nil
}

// loadKeys reads and parses the name list file.
func loadKeys() ([]lookup.Key, error) {
	if usersFile == "" {
		return nil, ErrUsersFileRequired
	}

	data, err := os.ReadFile(usersFile)
	if err != nil {
		return nil, fmt.Errorf("cli: reading users file: %w", err)
	}
	return lookup.ParseKeys(string(data)), nil
}

// isArchive reports whether the path names a PKCS#12 archive by extension.
func isArchive(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".pfx") || strings.HasSuffix(lower, ".p12")
}

// prompt asks for one line of input on stdin. Returns an empty string when
// stdin is closed or not a terminal.
func prompt(log logger.Logger, message string) string {
	log.Printf("%s", message)
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}

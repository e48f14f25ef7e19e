// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
// Use of this source code is governed by a BSD 3-Clause
// license that can be found in the LICENSE file.

// graph-upn-lookup authenticates to Microsoft Graph with an X.509 client
// certificate, looks up user principal names for a list of given/surname
// pairs, and exports the results as CSV.
//
// # Installation
//
// Install with Go 1.25.5 or later:
//
//	go install github.com/H0llyW00dzZ/graph-upn-lookup/cmd/graph-upn-lookup@latest
//
// # Usage
//
//	graph-upn-lookup [CERT_FILE] [FLAGS]
//
// # Flags
//
//	-c, --cert        Certificate file: PEM pair member, combined PEM, or PFX/P12 archive
//	-k, --key         Separate private key file (default: <name>_key.pem next to <name>_cert.pem)
//	-p, --password    Certificate or key password
//	-u, --users-file  Pipe-delimited name list file, one "|First |Last |" entry per line
//	-o, --output      Output CSV file (default: upn_lookup_results.csv)
//	    --config      Path to configuration file (JSON or YAML)
//	    --json-logs   Emit progress as JSON lines on stderr
//	    --help        Show help information
//	    --version     Show version information
//
// # Environment Variables
//
//	AZURE_CERT_PATH           Certificate file path (alternative to --cert flag)
//	AZURE_CERT_PASSWORD       Certificate password (alternative to --password flag)
//	AZURE_TENANT_ID           Directory tenant identifier
//	AZURE_CLIENT_ID           Application (client) identifier
//	GRAPH_LOOKUP_CONFIG_FILE  Path to configuration file (alternative to --config flag)
//
// # Configuration
//
// The configuration file carries the client identity and endpoint settings:
//
//	tenantId: 00000000-0000-0000-0000-000000000000
//	clientId: 00000000-0000-0000-0000-000000000000
//	authority: https://login.microsoftonline.com
//	graphBaseUrl: https://graph.microsoft.com/v1.0
//	scopes:
//	  - https://graph.microsoft.com/.default
//	timeoutSeconds: 30
//
// # Examples
//
// Look up names with a PFX archive:
//
//	graph-upn-lookup --config tenant.yaml -c client.pfx -u names.txt
//
// Look up names with a PEM pair, writing to a custom file:
//
//	graph-upn-lookup --config tenant.yaml -c app_cert.pem -u names.txt -o out.csv
//
// The export has the fixed columns First Name, Last Name, UPN, Email,
// User ID and Status, where Status is Found, Multiple or NotFound. A name
// matching several directory users produces one row per match.
package main

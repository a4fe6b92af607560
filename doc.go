// Copyright 2023 uhppoted@twyst.co.za. All rights reserved.
// Use of this source code is governed by an MIT-style license
// that can be found in the LICENSE file.

/*
Package uhppoted-lambda-sheets is an AWS Lambda handler that manages Google Sheets spreadsheets on behalf of a
Google service account.

Each invocation carries an action and a set of attributes. The action selects the operation and the minimal set of
OAuth2 scopes it needs, credentials are built fresh from the service account configured in the environment and the
result is returned as a {statusCode, body} envelope.

uhppoted-lambda-sheets supports the following actions:

  - add_viewer, to grant read access on a spreadsheet to a group e-mail address
  - create_sheet, to create a new spreadsheet with DEFAULT_EMAIL as the default editor
  - count_rows, to count the non-empty data rows (A2:S) of a spreadsheet

The same handler can be run from the command line:

  - lambda, to run the AWS Lambda runtime loop
  - invoke, to run a single action locally
  - serve, to expose the actions on a local HTTP endpoint
  - encode-key, to convert a service account credentials.json file into environment variables
*/
package sheets

// Package cognito contains no code. An AWS Cognito sign-up and sign-in
// client, built on the AWS SDK v2, is in pkg/auth/cloud/adapters/cognito.
package cognito

// Package entraid contains no code. A Microsoft Entra ID (formerly Azure AD)
// sign-in client, built on the MSAL library, is in pkg/auth/cloud/adapters/azure.
package entraid

// Package mfa provides Multi-Factor Authentication capabilities.
//
// It supports Time-based One-Time Passwords (TOTP) and Recovery Codes.
// The package is designed to be extensible to support SMS, Email, and Push notification based MFA.
package mfa

/*
Package commerce provides e-commerce and payment processing capabilities.

Subpackages:

  - billing: Subscription and invoice management
  - currency: Currency conversion
  - payment: Payment gateway integrations (Stripe, PayPal) and an in-memory provider
  - tax: Tax calculation services

Usage:

	import "github.com/chris-alexander-pop/system-design-library/pkg/commerce/payment/adapters/stripe"

	processor, err := stripe.New(cfg)
	result, err := processor.Charge(ctx, &payment.ChargeRequest{Amount: 10.00, Currency: "usd"})
*/
package commerce

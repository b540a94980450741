// Package protection is the client for the external request-protection
// service. Every server action consults it before touching the store; the
// verdict comes back as a tagged union dispatched by exhaustive switching.
package protection

// Conclusion classifies the service's verdict on a request.
type Conclusion int

const (
	// Allow means the request may proceed.
	Allow Conclusion = iota
	// Deny means the request was rejected; Decision.Reason says why.
	Deny
	// Errored means the service itself failed and returned no verdict.
	Errored
)

// EmailType sub-classifies an email-validity denial.
type EmailType string

const (
	EmailDisposable  EmailType = "DISPOSABLE"
	EmailInvalid     EmailType = "INVALID"
	EmailNoMXRecords EmailType = "NO_MX_RECORDS"
)

// Reason is the sealed set of denial reasons. Handlers type-switch over it;
// there are no boolean capability predicates.
type Reason interface {
	reason()
}

// RateLimitReason denies a request that exhausted its token bucket.
type RateLimitReason struct{}

// BotReason denies a request classified as automated traffic.
type BotReason struct{}

// ShieldReason denies a request whose content tripped the WAF-style shield.
type ShieldReason struct{}

// EmailReason denies a request over email validity; Types carries the
// sub-classifications the service reported.
type EmailReason struct {
	Types []EmailType
}

// OtherReason denies a request for a cause this client does not model.
type OtherReason struct {
	Detail string
}

func (RateLimitReason) reason() {}
func (BotReason) reason()       {}
func (ShieldReason) reason()    {}
func (EmailReason) reason()     {}
func (OtherReason) reason()     {}

// Has reports whether the denial carries the given email sub-type.
func (r EmailReason) Has(t EmailType) bool {
	for _, candidate := range r.Types {
		if candidate == t {
			return true
		}
	}
	return false
}

// Decision is the service's verdict. Reason is non-nil exactly when the
// conclusion is Deny. ID is the service's correlation identifier; the
// pre-payment probe hands it to the checkout widget.
type Decision struct {
	ID         string
	Conclusion Conclusion
	Reason     Reason
}

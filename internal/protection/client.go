package protection

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"inkwell/internal/observability"

	"github.com/google/uuid"
)

// Rule sets configured on the service side. Each action consults its own
// set so limits and email policies are tuned independently; the payment set
// in particular is distinct from everything else.
const (
	RulesRegister = "register"
	RulesLogin    = "login"
	RulesBlogPost = "blog-post"
	RulesComment  = "comment"
	RulesSearch   = "search"
	RulesPayment  = "payment"
)

// RequestInfo is the request context the caller passes explicitly, never
// read from ambient state. Suspicious carries the upstream proxy's
// suspicion header verdict.
type RequestInfo struct {
	IP         string
	Method     string
	Path       string
	UserAgent  string
	Suspicious bool
}

// ShieldParams is the content submitted for WAF-style inspection.
type ShieldParams struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Params are the action-specific inputs to a protection check.
type Params struct {
	// Rules names the rule set to evaluate.
	Rules string
	// Email is set for registration, login and payment checks.
	Email string
	// Shield is set for content-bearing actions.
	Shield *ShieldParams
	// Requested is the rate-limit cost of this request in token units.
	Requested int
}

// Client calls the external decision service. A nil client or one built
// without an endpoint allows everything, so development environments run
// without the SaaS; the synthesized decision still carries a correlation ID.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

// NewClient builds a protection client. baseURL may be empty to disable
// remote checks. No retries: a failure is terminal for that request.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpc:   &http.Client{Timeout: timeout},
	}
}

type wireRequest struct {
	Rules      string        `json:"rules"`
	IP         string        `json:"ip"`
	Method     string        `json:"method"`
	Path       string        `json:"path"`
	UserAgent  string        `json:"userAgent"`
	Suspicious bool          `json:"suspicious"`
	Email      string        `json:"email,omitempty"`
	Shield     *ShieldParams `json:"shield,omitempty"`
	Requested  int           `json:"requested,omitempty"`
}

type wireDecision struct {
	ID         string `json:"id"`
	Conclusion string `json:"conclusion"`
	Reason     struct {
		Type       string   `json:"type"`
		EmailTypes []string `json:"emailTypes"`
		Detail     string   `json:"detail"`
	} `json:"reason"`
}

// Protect evaluates the request against the named rule set. The call blocks
// until the service answers or the client times out; a transport or decode
// failure yields an Errored decision, never a Go error.
func (c *Client) Protect(ctx context.Context, req RequestInfo, p Params) Decision {
	if c == nil || c.baseURL == "" {
		d := Decision{ID: uuid.NewString(), Conclusion: Allow}
		observability.ProtectionDecisions.WithLabelValues(p.Rules, "allow").Inc()
		return d
	}

	decision := c.call(ctx, req, p)

	switch decision.Conclusion {
	case Allow:
		observability.ProtectionDecisions.WithLabelValues(p.Rules, "allow").Inc()
	case Deny:
		observability.ProtectionDecisions.WithLabelValues(p.Rules, "deny").Inc()
	case Errored:
		observability.ProtectionDecisions.WithLabelValues(p.Rules, "error").Inc()
	}

	return decision
}

func (c *Client) call(ctx context.Context, req RequestInfo, p Params) Decision {
	body, err := json.Marshal(wireRequest{
		Rules:      p.Rules,
		IP:         req.IP,
		Method:     req.Method,
		Path:       req.Path,
		UserAgent:  req.UserAgent,
		Suspicious: req.Suspicious,
		Email:      p.Email,
		Shield:     p.Shield,
		Requested:  p.Requested,
	})
	if err != nil {
		return Decision{Conclusion: Errored}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/decide", bytes.NewReader(body))
	if err != nil {
		return Decision{Conclusion: Errored}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		slog.WarnContext(ctx, "protection service unreachable", slog.String("rules", p.Rules), slog.String("error", err.Error()))
		return Decision{Conclusion: Errored}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		slog.WarnContext(ctx, "protection service error", slog.String("rules", p.Rules), slog.Int("status", resp.StatusCode))
		return Decision{Conclusion: Errored}
	}

	var wire wireDecision
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return Decision{Conclusion: Errored}
	}

	return fromWire(wire)
}

func fromWire(wire wireDecision) Decision {
	d := Decision{ID: wire.ID}

	switch wire.Conclusion {
	case "ALLOW":
		d.Conclusion = Allow
		return d
	case "DENY":
		d.Conclusion = Deny
	default:
		d.Conclusion = Errored
		return d
	}

	switch wire.Reason.Type {
	case "RATE_LIMIT":
		d.Reason = RateLimitReason{}
	case "BOT":
		d.Reason = BotReason{}
	case "SHIELD":
		d.Reason = ShieldReason{}
	case "EMAIL":
		types := make([]EmailType, 0, len(wire.Reason.EmailTypes))
		for _, t := range wire.Reason.EmailTypes {
			types = append(types, EmailType(t))
		}
		d.Reason = EmailReason{Types: types}
	default:
		d.Reason = OtherReason{Detail: wire.Reason.Detail}
	}

	return d
}

// String renders the conclusion for logs.
func (c Conclusion) String() string {
	switch c {
	case Allow:
		return "allow"
	case Deny:
		return "deny"
	case Errored:
		return "error"
	default:
		return fmt.Sprintf("conclusion(%d)", int(c))
	}
}

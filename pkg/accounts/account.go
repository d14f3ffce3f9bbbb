// Package accounts models the accounts that report quota models and the
// stores that hold snapshots of them.
//
// A Store publishes immutable snapshots. Consumers read the current snapshot
// with Accounts, request a background refresh with FetchAccounts and observe
// new snapshots through OnChange.
package accounts

import (
	"encoding/json"

	"github.com/qisthidev/Antigravity-Manager/pkg/modelkey"
)

// Account is one authenticated account. Token is carried opaquely.
type Account struct {
	ID                  string          `json:"id"`
	Email               string          `json:"email"`
	Name                string          `json:"name,omitempty"`
	Token               json.RawMessage `json:"token,omitempty"`
	Quota               *Quota          `json:"quota,omitempty"`
	Disabled            bool            `json:"disabled,omitempty"`
	DisabledReason      string          `json:"disabled_reason,omitempty"`
	ProxyDisabled       bool            `json:"proxy_disabled,omitempty"`
	ProxyDisabledReason string          `json:"proxy_disabled_reason,omitempty"`
	ProtectedModels     []string        `json:"protected_models,omitempty"`
	CustomLabel         string          `json:"custom_label,omitempty"`
	CreatedAt           int64           `json:"created_at"`
	LastUsed            int64           `json:"last_used"`
}

// Quota is the latest quota report for an account.
type Quota struct {
	Models               []ModelQuota      `json:"models"`
	LastUpdated          int64             `json:"last_updated"`
	IsForbidden          bool              `json:"is_forbidden,omitempty"`
	ForbiddenReason      string            `json:"forbidden_reason,omitempty"`
	SubscriptionTier     string            `json:"subscription_tier,omitempty"`
	ModelForwardingRules map[string]string `json:"model_forwarding_rules,omitempty"`
}

// ModelQuota is one model reported by an account. Capability fields are
// carried as reported and never merged with catalog metadata.
type ModelQuota struct {
	Name               string          `json:"name"`
	Percentage         int             `json:"percentage"`
	ResetTime          string          `json:"reset_time"`
	DisplayName        string          `json:"display_name,omitempty"`
	SupportsImages     *bool           `json:"supports_images,omitempty"`
	SupportsThinking   *bool           `json:"supports_thinking,omitempty"`
	ThinkingBudget     *int            `json:"thinking_budget,omitempty"`
	Recommended        *bool           `json:"recommended,omitempty"`
	MaxTokens          *int            `json:"max_tokens,omitempty"`
	MaxOutputTokens    *int            `json:"max_output_tokens,omitempty"`
	SupportedMimeTypes map[string]bool `json:"supported_mime_types,omitempty"`
}

// QuotaModels returns the reported models, or nil when the account has no quota.
func (a Account) QuotaModels() []ModelQuota {
	if a.Quota == nil {
		return nil
	}
	return a.Quota.Models
}

// DisplayLabel returns the custom label, the name or the email.
func (a Account) DisplayLabel() string {
	switch {
	case a.CustomLabel != "":
		return a.CustomLabel
	case a.Name != "":
		return a.Name
	default:
		return a.Email
	}
}

// FindQuotaModel returns the first reported model matching name, ignoring case.
func FindQuotaModel(list []Account, name string) (ModelQuota, bool) {
	key := modelkey.Normalize(name)
	for _, a := range list {
		for _, m := range a.QuotaModels() {
			if modelkey.Normalize(m.Name) == key {
				return m, true
			}
		}
	}
	return ModelQuota{}, false
}

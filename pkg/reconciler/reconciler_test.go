package reconciler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qisthidev/Antigravity-Manager/pkg/accounts"
	"github.com/qisthidev/Antigravity-Manager/pkg/catalogs"
	"github.com/qisthidev/Antigravity-Manager/pkg/i18n"
	"github.com/qisthidev/Antigravity-Manager/pkg/logging"
	"github.com/qisthidev/Antigravity-Manager/pkg/reconciler"
)

func newCatalog(t *testing.T, entries ...catalogs.Entry) *catalogs.Catalog {
	t.Helper()
	c, err := catalogs.NewFromEntries(entries)
	require.NoError(t, err)
	return c
}

func account(models ...accounts.ModelQuota) accounts.Account {
	return accounts.Account{Quota: &accounts.Quota{Models: models}}
}

func TestIdempotence(t *testing.T) {
	catalog := newCatalog(t,
		catalogs.Entry{Key: "gpt-x", Label: "GPT X", Icon: "openai"},
		catalogs.Entry{Key: "b", Label: "B"},
	)
	list := []accounts.Account{
		account(accounts.ModelQuota{Name: "GPT-X", DisplayName: "Custom GPT"}),
		account(accounts.ModelQuota{Name: "mystery"}),
	}

	first := reconciler.Reconcile(catalog, list)
	second := reconciler.Reconcile(catalog, list)
	assert.Equal(t, first, second)
}

func TestDynamicPrecedence(t *testing.T) {
	catalog := newCatalog(t,
		catalogs.Entry{Key: "static-only", Label: "Static Only"},
		catalogs.Entry{Key: "gpt-x", Label: "GPT X", Group: "OpenAI", Icon: "openai"},
	)
	list := []accounts.Account{
		account(accounts.ModelQuota{Name: "GPT-X", DisplayName: "Custom GPT"}),
	}

	got := reconciler.Reconcile(catalog, list)
	require.Len(t, got, 2)

	e := got[0]
	assert.Equal(t, "GPT-X", e.ID)
	assert.Equal(t, "Custom GPT", e.Name)
	assert.Equal(t, "Custom GPT", e.Desc)
	assert.Equal(t, "OpenAI", e.Group)
	assert.Equal(t, "openai", e.Icon.Render())
	assert.Equal(t, reconciler.SourceDynamic, e.Source)
	assert.Equal(t, "gpt-x", e.CatalogKey)

	assert.Equal(t, "static-only", got[1].ID)
	assert.Equal(t, reconciler.SourceStatic, got[1].Source)
}

func TestDynamicLabelFallbacks(t *testing.T) {
	catalog := newCatalog(t,
		catalogs.Entry{Key: "gpt-x", Label: "GPT X", I18nKey: "models.gpt_x"},
	)
	tr := i18n.TranslatorFunc(func(key, fallback string) string {
		if key == "models.gpt_x" {
			return "GPT X (localized)"
		}
		return fallback
	})

	t.Run("catalog label when no display name", func(t *testing.T) {
		got := reconciler.Reconcile(catalog, []accounts.Account{account(accounts.ModelQuota{Name: "gpt-x"})},
			reconciler.WithTranslator(tr))
		require.Len(t, got, 1)
		assert.Equal(t, "GPT X (localized)", got[0].Name)
		assert.Equal(t, catalogs.DefaultGroup, got[0].Group)
	})

	t.Run("raw name when unmatched", func(t *testing.T) {
		got := reconciler.Reconcile(nil, []accounts.Account{account(accounts.ModelQuota{Name: "Raw-Model"})})
		require.Len(t, got, 1)
		assert.Equal(t, "Raw-Model", got[0].Name)
		assert.Equal(t, "Raw-Model", got[0].ID)
	})
}

func TestDisplayNameDedup(t *testing.T) {
	tests := []struct {
		name     string
		accounts []accounts.Account
		wantID   string
		wantName string
	}{
		{
			name: "later display name overwrites bare entry",
			accounts: []accounts.Account{
				account(accounts.ModelQuota{Name: "model-a"}),
				account(accounts.ModelQuota{Name: "MODEL-A", DisplayName: "Model A"}),
			},
			wantID:   "MODEL-A",
			wantName: "Model A",
		},
		{
			name: "bare entry never overwrites display name",
			accounts: []accounts.Account{
				account(accounts.ModelQuota{Name: "model-a", DisplayName: "Model A"}),
				account(accounts.ModelQuota{Name: "MODEL-A"}),
			},
			wantID:   "model-a",
			wantName: "Model A",
		},
		{
			name: "later display name wins",
			accounts: []accounts.Account{
				account(accounts.ModelQuota{Name: "model-a", DisplayName: "First"}),
				account(accounts.ModelQuota{Name: "model-a", DisplayName: "Second"}),
			},
			wantID:   "model-a",
			wantName: "Second",
		},
		{
			name: "duplicates within one account",
			accounts: []accounts.Account{
				account(
					accounts.ModelQuota{Name: "model-a"},
					accounts.ModelQuota{Name: "Model-A", DisplayName: "Model A"},
				),
			},
			wantID:   "Model-A",
			wantName: "Model A",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := reconciler.Reconcile(nil, tt.accounts)
			require.Len(t, got, 1)
			assert.Equal(t, tt.wantID, got[0].ID)
			assert.Equal(t, tt.wantName, got[0].Name)
		})
	}
}

func TestFirstSeenOrder(t *testing.T) {
	list := []accounts.Account{
		account(accounts.ModelQuota{Name: "zeta"}, accounts.ModelQuota{Name: "alpha"}),
		account(accounts.ModelQuota{Name: "mid"}, accounts.ModelQuota{Name: "ZETA", DisplayName: "Zeta"}),
	}
	got := reconciler.Reconcile(nil, list)
	assert.Equal(t, []string{"ZETA", "alpha", "mid"}, reconciler.IDs(got))
}

func TestThinkingFilter(t *testing.T) {
	catalog := newCatalog(t,
		catalogs.Entry{Key: "gpt-x", Label: "GPT X"},
		catalogs.Entry{Key: "gpt-x-thinking", Label: "GPT X Thinking"},
	)
	list := []accounts.Account{
		account(accounts.ModelQuota{Name: "gpt-x-thinking", DisplayName: "GPT X Thinking"}),
		account(accounts.ModelQuota{Name: "Other-THINKING"}),
	}

	got := reconciler.Reconcile(catalog, list)
	assert.Equal(t, []string{"gpt-x"}, reconciler.IDs(got))
	assert.Equal(t, reconciler.SourceStatic, got[0].Source)
}

func TestLabelCollisionSuppression(t *testing.T) {
	catalog := newCatalog(t,
		catalogs.Entry{Key: "a", Label: "Same"},
		catalogs.Entry{Key: "b", Label: "Same"},
		catalogs.Entry{Key: "c", Label: "Different", ShortLabel: "same"},
	)

	got := reconciler.Reconcile(catalog, nil)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "Same", got[0].Name)
}

func TestDynamicLabelsSuppressStatic(t *testing.T) {
	catalog := newCatalog(t,
		catalogs.Entry{Key: "claude", Label: "Claude", ShortLabel: "Claude 3"},
		catalogs.Entry{Key: "claude-alias", Label: "Claude Alias", ShortLabel: "Claude 3"},
		catalogs.Entry{Key: "pro", Label: "Claude Pro"},
	)
	list := []accounts.Account{
		account(accounts.ModelQuota{Name: "claude", DisplayName: "Claude Pro"}),
	}

	got := reconciler.Reconcile(catalog, list)
	assert.Equal(t, []string{"claude"}, reconciler.IDs(got))
}

func TestProtectedKeyMatch(t *testing.T) {
	catalog := newCatalog(t,
		catalogs.Entry{Key: "gemini-3-pro-high", Label: "Gemini 3 Pro (High)", Group: "Gemini", Icon: "gemini", ProtectedKey: "gemini-3-pro-preview"},
		catalogs.Entry{Key: "gemini-3-flash", Label: "Gemini 3 Flash", Group: "Gemini", Icon: "gemini"},
	)
	list := []accounts.Account{
		account(accounts.ModelQuota{Name: "Gemini-3-Pro-Preview", DisplayName: "Gemini 3 Pro Preview"}),
	}

	got := reconciler.Reconcile(catalog, list)
	assert.Equal(t, []string{"Gemini-3-Pro-Preview", "gemini-3-pro-high", "gemini-3-flash"}, reconciler.IDs(got))

	assert.Equal(t, "Gemini 3 Pro Preview", got[0].Name)
	assert.Equal(t, "Gemini", got[0].Group)
	assert.Equal(t, "gemini", got[0].Icon.Render())
	assert.Equal(t, "gemini-3-pro-high", got[0].CatalogKey)

	assert.Equal(t, reconciler.SourceStatic, got[1].Source, "aliased catalog key stays pinnable")
	assert.Equal(t, "Gemini 3 Pro (High)", got[1].Name)
}

func TestProtectedKeyMatchWithoutDisplayName(t *testing.T) {
	catalog := newCatalog(t,
		catalogs.Entry{Key: "gemini-3-pro-high", Label: "Gemini 3 Pro", ProtectedKey: "gemini-3-pro-preview"},
	)
	list := []accounts.Account{account(accounts.ModelQuota{Name: "gemini-3-pro-preview"})}

	// The borrowed catalog label is a used dynamic label.
	got := reconciler.Reconcile(catalog, list)
	assert.Equal(t, []string{"gemini-3-pro-preview"}, reconciler.IDs(got))
	assert.Equal(t, "Gemini 3 Pro", got[0].Name)
}

func TestUnknownModelFallback(t *testing.T) {
	catalog := newCatalog(t, catalogs.Entry{Key: "known", Label: "Known"})
	got := reconciler.Reconcile(catalog, []accounts.Account{account(accounts.ModelQuota{Name: "mystery-model"})})

	require.Len(t, got, 2)
	e := got[0]
	assert.Equal(t, reconciler.DynamicGroup, e.Group)
	require.NotNil(t, e.Icon)
	assert.IsType(t, catalogs.PlaceholderIcon{}, e.Icon)
	assert.NotEmpty(t, e.Icon.Render())
	assert.False(t, e.Matched())
}

func TestStaticLocalization(t *testing.T) {
	catalog := newCatalog(t,
		catalogs.Entry{Key: "a", Label: "Alpha", I18nKey: "models.a"},
		catalogs.Entry{Key: "b", Label: "Beta", I18nKey: "models.missing"},
		catalogs.Entry{Key: "c", Label: "Gamma"},
	)
	tr := i18n.TranslatorFunc(func(key, fallback string) string {
		if key == "models.a" {
			return "Alfa"
		}
		return fallback
	})

	got := reconciler.Reconcile(catalog, nil, reconciler.WithTranslator(tr))
	require.Len(t, got, 3)
	assert.Equal(t, "Alfa", got[0].Name)
	assert.Equal(t, "Beta", got[1].Name)
	assert.Equal(t, "Gamma", got[2].Name)
}

func TestDegenerateInputs(t *testing.T) {
	t.Run("nothing", func(t *testing.T) {
		assert.Empty(t, reconciler.Reconcile(nil, nil))
	})

	t.Run("accounts without quota", func(t *testing.T) {
		catalog := newCatalog(t, catalogs.Entry{Key: "a", Label: "A"})
		got := reconciler.Reconcile(catalog, []accounts.Account{{ID: "x"}, {ID: "y", Quota: &accounts.Quota{}}})
		assert.Equal(t, []string{"a"}, reconciler.IDs(got))
	})

	t.Run("empty catalog is pure dynamic", func(t *testing.T) {
		got := reconciler.Reconcile(newCatalog(t), []accounts.Account{account(accounts.ModelQuota{Name: "m"})})
		assert.Equal(t, []string{"m"}, reconciler.IDs(got))
	})
}

func TestInputsNotMutated(t *testing.T) {
	list := []accounts.Account{account(accounts.ModelQuota{Name: "m", DisplayName: "M"})}
	got := reconciler.Reconcile(nil, list)
	require.Len(t, got, 1)

	got[0].Quota.DisplayName = "changed"
	assert.Equal(t, "M", list[0].Quota.Models[0].DisplayName)
}

func TestMaxOutputTokens(t *testing.T) {
	reported := 1234
	catalog := newCatalog(t, catalogs.Entry{Key: "gemini-3-flash", Label: "Gemini 3 Flash"})

	got := reconciler.Reconcile(catalog, []accounts.Account{
		account(accounts.ModelQuota{Name: "custom", MaxOutputTokens: &reported}),
	})
	require.Len(t, got, 2)
	assert.Equal(t, 1234, got[0].MaxOutputTokens())
	assert.Equal(t, 65536, got[1].MaxOutputTokens())
}

func TestEndToEnd(t *testing.T) {
	catalog := newCatalog(t, catalogs.Entry{Key: "claude", Label: "Claude", ShortLabel: "Claude 3", Group: "Anthropic"})
	list := []accounts.Account{
		account(accounts.ModelQuota{Name: "claude", DisplayName: "Claude Pro"}),
		account(accounts.ModelQuota{Name: "mystery-model"}),
	}

	tl := logging.NewTestLogger(t)
	got := reconciler.New(reconciler.WithLogger(tl.Logger)).Reconcile(catalog, list)

	require.Len(t, got, 2)
	assert.Equal(t, "claude", got[0].ID)
	assert.Equal(t, "Claude Pro", got[0].Name)
	assert.Equal(t, "Anthropic", got[0].Group)
	assert.Equal(t, "mystery-model", got[1].ID)
	assert.Equal(t, "mystery-model", got[1].Name)
	assert.Equal(t, reconciler.DynamicGroup, got[1].Group)

	tl.AssertContains(t, "Reconciled models")
	tl.AssertContains(t, `"dynamic":2`)
}

func TestHelpers(t *testing.T) {
	entries := []reconciler.Entry{{ID: "A"}, {ID: "b"}}
	assert.True(t, reconciler.Contains(entries, "A"))
	assert.False(t, reconciler.Contains(entries, "a"))
	assert.Equal(t, "dynamic", reconciler.SourceDynamic.String())
	assert.Equal(t, "static", reconciler.SourceStatic.String())
}

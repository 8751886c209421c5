package matching

import (
	"testing"

	"poojaseva/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdmits_Rules(t *testing.T) {
	ritual := Ritual{Name: "Satyanarayan Pooja", Category: "homam"}
	strict := EligibilityPolicy{CatchAll: false}

	tests := []struct {
		name     string
		provider models.Provider
		templeID string
		wantRule Rule
		wantOK   bool
	}{
		{
			name:     "skill contains ritual name",
			provider: models.Provider{Skills: []string{"Satyanarayan Pooja Vidhi"}},
			wantRule: RuleSkillName, wantOK: true,
		},
		{
			name:     "ritual name contains skill",
			provider: models.Provider{Skills: []string{"satyanarayan"}},
			wantRule: RuleSkillName, wantOK: true,
		},
		{
			name:     "category tag case-insensitive",
			provider: models.Provider{Skills: []string{"HOMAM"}},
			wantRule: RuleCategory, wantOK: true,
		},
		{
			name:     "attached to requested temple",
			provider: models.Provider{Skills: []string{"vastu"}, AttachedTemples: []string{"t-1"}},
			templeID: "t-1",
			wantRule: RuleTemple, wantOK: true,
		},
		{
			name:     "attached to another temple",
			provider: models.Provider{Skills: []string{"vastu"}, AttachedTemples: []string{"t-2"}},
			templeID: "t-1",
			wantOK:   false,
		},
		{
			name:     "temple rule ignored without temple context",
			provider: models.Provider{AttachedTemples: []string{"t-1"}},
			wantOK:   false,
		},
		{
			name:     "blank skill does not match everything",
			provider: models.Provider{Skills: []string{"  "}},
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, ok := strict.Admits(ritual, tt.templeID, tt.provider)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantRule, rule)
		})
	}
}

func TestAdmits_CatchAllInterpretations(t *testing.T) {
	ritual := Ritual{Name: "Rudrabhishek", Category: "abhishekam"}
	unrelated := models.Provider{ID: "p-unrelated", Skills: []string{"kundali reading"}}
	noSkills := models.Provider{ID: "p-empty"}

	t.Run("catch-all kept admits any skilled provider", func(t *testing.T) {
		pol := EligibilityPolicy{CatchAll: true}

		rule, ok := pol.Admits(ritual, "", unrelated)
		require.True(t, ok)
		assert.Equal(t, RuleCatchAll, rule)

		_, ok = pol.Admits(ritual, "", noSkills)
		assert.False(t, ok, "a provider without skills is never admitted by the catch-all")
	})

	t.Run("strict policy excludes unmatched providers", func(t *testing.T) {
		pol := EligibilityPolicy{CatchAll: false}

		_, ok := pol.Admits(ritual, "", unrelated)
		assert.False(t, ok)
		_, ok = pol.Admits(ritual, "", noSkills)
		assert.False(t, ok)
	})

	t.Run("specific rule wins over catch-all", func(t *testing.T) {
		pol := EligibilityPolicy{CatchAll: true}
		rule, ok := pol.Admits(ritual, "", models.Provider{Skills: []string{"abhishekam"}})
		require.True(t, ok)
		assert.Equal(t, RuleCategory, rule)
	})
}

func TestFilter_KeepsInputOrder(t *testing.T) {
	providers := []models.Provider{
		{ID: "a", Skills: []string{"griha pravesh"}},
		{ID: "b", Skills: []string{}},
		{ID: "c", Skills: []string{"homam"}},
		{ID: "d", Skills: []string{"satyanarayan pooja"}},
	}
	matches := EligibilityPolicy{}.Filter(Ritual{Name: "Satyanarayan Pooja", Category: "homam"}, "", providers)

	require.Len(t, matches, 2)
	assert.Equal(t, "c", matches[0].Provider.ID)
	assert.Equal(t, "d", matches[1].Provider.ID)
}

func TestFilter_EmptyDirectory(t *testing.T) {
	matches := EligibilityPolicy{CatchAll: true}.Filter(Ritual{Name: "Navagraha Shanti"}, "", nil)
	assert.Empty(t, matches)
}

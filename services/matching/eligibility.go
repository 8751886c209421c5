package matching

import (
	"strings"

	"poojaseva/models"
)

// Rule names the eligibility rule that admitted a provider.
type Rule string

const (
	RuleSkillName Rule = "skill_name" // skill tag and ritual name overlap
	RuleCategory  Rule = "category"   // skill set carries the ritual category
	RuleTemple    Rule = "temple"     // provider is attached to the requested temple
	RuleCatchAll  Rule = "catch_all"  // provider lists at least one skill
)

// Ritual is the part of a pooja the eligibility rules look at.
type Ritual struct {
	Name     string
	Category string
}

// RitualOf extracts the eligibility descriptor of a pooja.
func RitualOf(p models.Pooja) Ritual {
	return Ritual{Name: p.Name, Category: p.Category}
}

// Match is an eligible provider together with the rule that admitted it.
type Match struct {
	Provider models.Provider
	Rule     Rule
}

// EligibilityPolicy decides which providers may serve a ritual/temple request.
//
// The specific rules are checked in order: skill/name substring overlap, category
// tag, temple attachment. CatchAll additionally admits any provider with a
// non-empty skill list; with it enabled the specific rules only decide which rule
// is reported, never whether a skilled provider is admitted.
type EligibilityPolicy struct {
	CatchAll bool
}

// Admits reports whether p may serve the request and which rule admitted it.
func (pol EligibilityPolicy) Admits(ritual Ritual, templeID string, p models.Provider) (Rule, bool) {
	skills := normalizedSkills(p.Skills)
	name := strings.ToLower(strings.TrimSpace(ritual.Name))
	category := strings.ToLower(strings.TrimSpace(ritual.Category))

	if name != "" {
		for _, s := range skills {
			if strings.Contains(s, name) || strings.Contains(name, s) {
				return RuleSkillName, true
			}
		}
	}
	if category != "" {
		for _, s := range skills {
			if s == category {
				return RuleCategory, true
			}
		}
	}
	if templeID != "" {
		for _, t := range p.AttachedTemples {
			if t == templeID {
				return RuleTemple, true
			}
		}
	}
	if pol.CatchAll && len(skills) > 0 {
		return RuleCatchAll, true
	}
	return "", false
}

// Filter narrows providers to those eligible for the request, keeping input order.
func (pol EligibilityPolicy) Filter(ritual Ritual, templeID string, providers []models.Provider) []Match {
	matches := make([]Match, 0, len(providers))
	for _, p := range providers {
		if rule, ok := pol.Admits(ritual, templeID, p); ok {
			matches = append(matches, Match{Provider: p, Rule: rule})
		}
	}
	return matches
}

// normalizedSkills lower-cases and trims skill tags, dropping blank ones so that an
// empty tag cannot substring-match every ritual name.
func normalizedSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryScenarioHasInjects(t *testing.T) {
	for _, scenario := range Scenarios() {
		injects := InjectsFor(scenario.ID)
		require.NotEmpty(t, injects, "scenario %s has no injects", scenario.ID)

		seen := map[string]bool{}
		for _, inject := range injects {
			assert.False(t, seen[inject.ID], "duplicate inject id %s", inject.ID)
			seen[inject.ID] = true
			assert.NotEmpty(t, inject.Title)
			assert.NotEmpty(t, inject.Content)

			_, ok := RoleByID(inject.TargetRole)
			assert.True(t, ok, "inject %s targets unknown role %s", inject.ID, inject.TargetRole)
		}
	}
}

func TestPhishingInjectSequence(t *testing.T) {
	injects := InjectsFor("phishing")
	require.Len(t, injects, 6)
	assert.Equal(t, "phishing_1", injects[0].ID)
	assert.Equal(t, "phishing_6", injects[5].ID)
}

func TestInjectsForUnknownScenario(t *testing.T) {
	assert.Nil(t, InjectsFor("zero_day"))
}

func TestScenarioByID(t *testing.T) {
	scenario, ok := ScenarioByID("malware")
	require.True(t, ok)
	assert.Equal(t, "Malware Infection", scenario.Name)
	assert.Equal(t, "Critical", scenario.Severity)

	_, ok = ScenarioByID("nonexistent")
	assert.False(t, ok)
}

func TestRoleCatalog(t *testing.T) {
	assert.Len(t, Roles(), 8)

	role, ok := RoleByID("security")
	require.True(t, ok)
	assert.Equal(t, "Security/Law Enforcement", role.Name)
}

func TestValidNISTCategory(t *testing.T) {
	for _, f := range NISTFunctions() {
		assert.True(t, ValidNISTCategory(f.ID))
	}
	assert.False(t, ValidNISTCategory("mitigate"))
	assert.False(t, ValidNISTCategory(""))
}

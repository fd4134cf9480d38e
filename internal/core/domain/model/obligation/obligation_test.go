package obligation_test

import (
	"testing"

	"exoprotrack/internal/core/domain/model/obligation"
	"exoprotrack/internal/core/domain/model/spec"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func methods() []spec.ProcessingMethod {
	return []spec.ProcessingMethod{
		{MethodID: "TFF", Name: "TFF", Cycles: 3, Order: 1},
		{MethodID: "CENTRIFUGE", Name: "Centrifugation", Cycles: 1, Order: 2},
		{MethodID: "WASH", Name: "Wash", Cycles: 2, Order: 3},
	}
}

func TestForProcessing_EnumeratesEveryCycleInDeclaredOrder(t *testing.T) {
	// Given
	ms := methods()

	// When
	list := obligation.ForProcessing(ms, nil)

	// Then
	sum := 0
	for _, m := range ms {
		sum += m.Cycles
	}
	require.Equal(t, sum, list.Len())

	keys := make([]string, 0, list.Len())
	seen := map[string]bool{}
	for _, o := range list.Obligations() {
		assert.Equal(t, obligation.KindProcessing, o.Kind)
		assert.False(t, seen[o.Key()], "duplicate key %s", o.Key())
		seen[o.Key()] = true
		keys = append(keys, o.Key())
	}
	assert.Equal(t, []string{"TFF#1", "TFF#2", "TFF#3", "CENTRIFUGE#1", "WASH#1", "WASH#2"}, keys)
}

func TestForProcessing_Satisfaction(t *testing.T) {
	completed := map[obligation.StepKey]bool{
		{MethodID: "TFF", Occurrence: 1}:        true,
		{MethodID: "TFF", Occurrence: 3}:        true,
		{MethodID: "CENTRIFUGE", Occurrence: 1}: true,
		{MethodID: "OTHER", Occurrence: 1}:      true,
	}

	list := obligation.ForProcessing(methods(), completed)

	assert.False(t, list.AllSatisfied())
	assert.Equal(t, []string{"TFF#2", "WASH#1", "WASH#2"}, list.Missing())

	completed[obligation.StepKey{MethodID: "TFF", Occurrence: 2}] = true
	completed[obligation.StepKey{MethodID: "WASH", Occurrence: 1}] = true
	completed[obligation.StepKey{MethodID: "WASH", Occurrence: 2}] = true

	list = obligation.ForProcessing(methods(), completed)
	assert.True(t, list.AllSatisfied())
	assert.Empty(t, list.Missing())
}

func TestForQC(t *testing.T) {
	tests := []spec.QCTest{{Code: "PARTICLES"}, {Code: "STERILITY"}, {Code: "ENDOTOXIN"}}

	t.Run("any recorded result satisfies the test", func(t *testing.T) {
		list := obligation.ForQC(tests, map[string]bool{"STERILITY": true})

		assert.Equal(t, []string{"PARTICLES", "ENDOTOXIN"}, list.Missing())
		assert.Equal(t, "[ ] PARTICLES, [x] STERILITY, [ ] ENDOTOXIN", list.String())
	})

	t.Run("all recorded", func(t *testing.T) {
		list := obligation.ForQC(tests, map[string]bool{"PARTICLES": true, "STERILITY": true, "ENDOTOXIN": true})

		assert.True(t, list.AllSatisfied())
	})
}

func TestChecklist_EmptyIsNotAllSatisfied(t *testing.T) {
	list := obligation.ForQC(nil, map[string]bool{"X": true})

	assert.True(t, list.IsEmpty())
	assert.False(t, list.AllSatisfied())
	assert.Nil(t, list.Missing())
}

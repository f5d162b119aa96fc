package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  QueryType
	}{
		{"date keywords and iso date", "When was the meeting on 2024-01-15?", Date},
		{"amount keywords and currency", "The total cost was $5 million", Amount},
		{"person keyword and email", "Who sent the email to john@example.com?", Person},
		{"several strong categories", "Who paid $1 million on January 15?", Multi},
		{"nothing recognized", "what is the capital of peru", General},
		{"empty", "", General},
		{"keyword inside a word", "explain photosynthesis", Person},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.query).Primary)
		})
	}
}

func TestClassify_Scores(t *testing.T) {
	result := Classify("When was the meeting on 2024-01-15?")

	// two keywords plus two date patterns
	assert.InDelta(t, 0.9, result.Scores[Date], 1e-9)
	assert.InDelta(t, 0.1, result.Scores[General], 1e-9)
	assert.InDelta(t, 0.9, result.Confidence, 1e-9)
	assert.Zero(t, result.Scores[Amount])
	assert.Contains(t, result.Signals, "date_kw:when")
	assert.Contains(t, result.Signals, "date_kw:meeting")
	assert.Contains(t, result.Signals, "date_pattern:1")
}

func TestClassify_ScoresAreCapped(t *testing.T) {
	result := Classify("total cost price value sum payment $1 $2 $3 10%")

	assert.Equal(t, Amount, result.Primary)
	assert.Equal(t, 1.0, result.Scores[Amount])
	assert.Equal(t, 1.0, result.Confidence)
}

func TestClassify_EmailCountsForPerson(t *testing.T) {
	result := Classify("a@b.io c@d.io")

	assert.InDelta(t, 0.5, result.Scores[Person], 1e-9)
	assert.Contains(t, result.Signals, "email:2")
	assert.Equal(t, Person, result.Primary)
}

func TestClassify_GeneralBaseline(t *testing.T) {
	result := Classify("what is the capital of peru")

	assert.InDelta(t, 0.1, result.Confidence, 1e-9)
	assert.Empty(t, result.Signals)
	assert.Len(t, result.Scores, 5)
}

func TestRelevantTypes(t *testing.T) {
	assert.Equal(t, []QueryType{Date, Amount}, RelevantTypes("Who paid $1 million on January 15?", 0.3))
	assert.Equal(t, []QueryType{Date, Person, Amount}, RelevantTypes("Who paid $1 million on January 15?", 0.15))
	assert.Empty(t, RelevantTypes("what is the capital of peru", 0.1))
}

func BenchmarkClassify(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = Classify("Who paid the invoice of $1,200 to Acme Corp on March 3?")
	}
}

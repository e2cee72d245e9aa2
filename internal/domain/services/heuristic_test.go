package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyNeutralText(t *testing.T) {
	c := NewHeuristicClassifier(testLogger())

	assert.Equal(t, 0.0, c.Classify("hello there, how are you"))
}

func TestClassifyExcessiveExclamations(t *testing.T) {
	c := NewHeuristicClassifier(testLogger())

	assert.Equal(t, 10.0, c.Classify("wow!!! amazing deal!!!"))
}

func TestClassifyShouting(t *testing.T) {
	c := NewHeuristicClassifier(testLogger())

	assert.Equal(t, 15.0, c.Classify("DONT MISS THIS DEAL"))
}

func TestClassifyLongDigitRun(t *testing.T) {
	c := NewHeuristicClassifier(testLogger())

	assert.Equal(t, 10.0, c.Classify("call 9876543210 to talk"))
}

func TestClassifyCurrencySymbol(t *testing.T) {
	c := NewHeuristicClassifier(testLogger())

	assert.Equal(t, 5.0, c.Classify("it costs ₹500 only"))
}

func TestClassifyEmbeddedURL(t *testing.T) {
	c := NewHeuristicClassifier(testLogger())

	assert.Equal(t, 5.0, c.Classify("visit www.example.org for more"))
}

func TestClassifySensitiveTerm(t *testing.T) {
	c := NewHeuristicClassifier(testLogger())

	assert.Equal(t, 25.0, c.Classify("enter your password to continue"))
}

func TestClassifyFeaturesAreAdditive(t *testing.T) {
	c := NewHeuristicClassifier(testLogger())

	// exclamations + digit run + currency + sensitive term
	score := c.Classify("send your otp now!!! transfer $100 to 9876543210 today!!!")

	assert.Equal(t, 50.0, score)
}

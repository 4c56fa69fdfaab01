package ml

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yashr23-ui/agentic-honeypot-api/pkg/logger"
)

const testVectorizer = `{
	"vocabulary": {
		"account": 0,
		"blocked": 1,
		"verify": 2,
		"account blocked": 3,
		"lunch": 4
	},
	"idf": [2.0, 3.0, 3.0, 4.0, 2.5],
	"stop_words": ["is", "your", "the"]
}`

const testModel = `{
	"coef": [2.0, 2.5, 2.5, 3.0, -1.0],
	"intercept": -2.0
}`

func writeArtifacts(t *testing.T, vectorizer, model string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	vPath := filepath.Join(dir, "vectorizer.json")
	mPath := filepath.Join(dir, "scam_model.json")
	require.NoError(t, os.WriteFile(vPath, []byte(vectorizer), 0o600))
	require.NoError(t, os.WriteFile(mPath, []byte(model), 0o600))
	return vPath, mPath
}

func TestLoadValidatesArtifacts(t *testing.T) {
	log := logger.NewDefault()

	t.Run("valid artifacts load", func(t *testing.T) {
		vPath, mPath := writeArtifacts(t, testVectorizer, testModel)
		p, err := Load(vPath, mPath, log)
		require.NoError(t, err)
		assert.NotNil(t, p)
	})

	t.Run("missing vectorizer file", func(t *testing.T) {
		_, mPath := writeArtifacts(t, testVectorizer, testModel)
		_, err := Load(filepath.Join(t.TempDir(), "missing.json"), mPath, log)
		assert.Error(t, err)
	})

	t.Run("idf length mismatch", func(t *testing.T) {
		vPath, mPath := writeArtifacts(t, `{"vocabulary":{"a":0,"b":1},"idf":[1.0],"stop_words":[]}`, testModel)
		_, err := Load(vPath, mPath, log)
		assert.Error(t, err)
	})

	t.Run("feature space mismatch", func(t *testing.T) {
		vPath, mPath := writeArtifacts(t, testVectorizer, `{"coef":[1.0],"intercept":0.0}`)
		_, err := Load(vPath, mPath, log)
		assert.Error(t, err)
	})
}

func TestVectorizerTransform(t *testing.T) {
	vPath, _ := writeArtifacts(t, testVectorizer, testModel)
	v, err := LoadVectorizer(vPath)
	require.NoError(t, err)

	t.Run("stopwords removed before bigrams form", func(t *testing.T) {
		// "your" and "is" drop out, leaving the adjacent pair
		// "account blocked" to hit the bigram feature.
		vec := v.Transform("Your account is blocked")
		assert.Contains(t, vec, 0)
		assert.Contains(t, vec, 1)
		assert.Contains(t, vec, 3)
	})

	t.Run("vector is l2 normalized", func(t *testing.T) {
		vec := v.Transform("account blocked verify")
		var sumSq float64
		for _, val := range vec {
			sumSq += val * val
		}
		assert.InDelta(t, 1.0, sumSq, 1e-9)
	})

	t.Run("out of vocabulary text yields zero vector", func(t *testing.T) {
		assert.Empty(t, v.Transform("completely unrelated words here"))
	})

	t.Run("empty text yields zero vector", func(t *testing.T) {
		assert.Empty(t, v.Transform(""))
	})
}

func TestPipelineScore(t *testing.T) {
	log := logger.NewDefault()
	vPath, mPath := writeArtifacts(t, testVectorizer, testModel)
	p, err := Load(vPath, mPath, log)
	require.NoError(t, err)

	t.Run("empty text degrades to prior probability", func(t *testing.T) {
		want := 1.0 / (1.0 + math.Exp(2.0)) // sigmoid(intercept)
		assert.InDelta(t, want, p.Score(""), 1e-9)
	})

	t.Run("scam phrasing scores above benign phrasing", func(t *testing.T) {
		scam := p.Score("your account is blocked, verify now")
		benign := p.Score("lunch again tomorrow?")
		assert.Greater(t, scam, benign)
	})

	t.Run("score stays within probability bounds", func(t *testing.T) {
		for _, text := range []string{"", "account", "account blocked verify account blocked"} {
			s := p.Score(text)
			assert.GreaterOrEqual(t, s, 0.0)
			assert.LessOrEqual(t, s, 1.0)
		}
	})
}

package tck

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-tck/pkg/compare"
	"github.com/dd0wney/cluso-tck/pkg/logging"
	"github.com/dd0wney/cluso-tck/pkg/metrics"
	"github.com/dd0wney/cluso-tck/pkg/nbv"
	"github.com/dd0wney/cluso-tck/pkg/value"
)

type fixture struct {
	checker *Checker
	metrics *metrics.Registry
	logs    *bytes.Buffer
}

func newFixture(t *testing.T, cfg Config) *fixture {
	t.Helper()
	logs := &bytes.Buffer{}
	reg := metrics.NewRegistry()
	c, err := NewChecker(cfg,
		WithLogger(logging.NewJSONLogger(logs, logging.DebugLevel)),
		WithMetrics(reg),
	)
	require.NoError(t, err)
	return &fixture{checker: c, metrics: reg, logs: logs}
}

func counter(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.Counter.GetValue()
}

func table(t *testing.T, text string) *value.DataSet {
	t.Helper()
	ds, err := nbv.ParseTable(text, nil)
	require.NoError(t, err)
	return ds
}

func TestChecker_Match(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	actual := table(t, "| name | age |\n| \"Tim Duncan\" | 42 |")

	outcome, err := f.checker.Check("FETCH PROP ON player \"Tim Duncan\"", actual, `
| age | name |
| 42 | "Tim Duncan" |
`)
	require.NoError(t, err)
	assert.True(t, outcome.Matched())
	assert.NoError(t, outcome.Err())
	assert.NotEmpty(t, outcome.ID)
	assert.Equal(t, compare.DefaultPolicy(), outcome.Policy)

	assert.Equal(t, 1.0, counter(t, f.metrics.ComparisonsTotal.WithLabelValues("unordered,strict", metrics.OutcomeMatch)))
	assert.Equal(t, 1.0, counter(t, f.metrics.ParsesTotal.WithLabelValues(metrics.KindTable, "success")))
}

func TestChecker_Mismatch(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	actual, err := value.NewDataSet([]string{"e"}, value.Row{value.EdgeValue(value.Edge{
		Name:      "like",
		Src:       "Tim Duncan",
		Dst:       "Tony Parker",
		Direction: value.Forward,
		Props:     map[string]value.Value{"likeness": value.IntValue(95)},
	})})
	require.NoError(t, err)

	query := `GO FROM "Tim Duncan" OVER like YIELD like AS e`
	outcome, err := f.checker.Check(query, actual, "| e |\n| -[:like{likeness:90}]-> |")
	require.NoError(t, err)
	require.False(t, outcome.Matched())

	d := outcome.Result.Diagnostic
	require.NotNil(t, d)
	assert.Equal(t, "e", d.Column)
	assert.Equal(t, "props.likeness", d.Path)

	err = outcome.Err()
	require.Error(t, err)
	assert.True(t, IsMismatch(err))
	msg := err.Error()
	assert.Contains(t, msg, query)
	assert.Contains(t, msg, "Actual:")
	assert.Contains(t, msg, `-[:like "Tim Duncan"->"Tony Parker"{likeness: 95}]->`)
	assert.Contains(t, msg, "Expected:")
	assert.Contains(t, msg, "props.likeness")

	assert.Equal(t, 1.0, counter(t, f.metrics.ComparisonsTotal.WithLabelValues("unordered,strict", metrics.OutcomeMismatch)))

	var mismatchLogged bool
	for _, line := range strings.Split(strings.TrimSpace(f.logs.String()), "\n") {
		var entry logging.LogEntry
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		if entry.Message == "result mismatch" {
			mismatchLogged = true
			assert.Equal(t, "INFO", entry.Level)
			assert.Equal(t, outcome.ID, entry.Fields["check_id"])
			assert.Equal(t, "e", entry.Fields["column"])
			assert.Equal(t, query, entry.Fields["query"])
		}
	}
	assert.True(t, mismatchLogged, "mismatch should be logged: %s", f.logs.String())
}

func TestChecker_ParseError(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	actual := table(t, "| a |\n| 1 |")

	_, err := f.checker.Check("", actual, "| a |\n| \"open |")
	require.Error(t, err)
	assert.True(t, nbv.IsParseError(err))
	assert.True(t, errors.Is(err, nbv.ErrUnterminatedString))

	assert.Equal(t, 1.0, counter(t, f.metrics.ParsesTotal.WithLabelValues(metrics.KindTable, "error")))
	assert.Equal(t, 1.0, counter(t, f.metrics.ParseErrorsTotal.WithLabelValues(nbv.ErrUnterminatedString.Error())))
	assert.Contains(t, f.logs.String(), `"level":"WARN"`)
}

func TestChecker_SchemaMismatch(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	actual := table(t, "| a |\n| 1 |")

	_, err := f.checker.Check("", actual, "| b |\n| 1 |")
	require.Error(t, err)
	assert.True(t, errors.Is(err, compare.ErrColumnMismatch))
	assert.True(t, compare.IsSchemaMismatch(err))

	_, err = f.checker.Check("", actual, "| a |\n| 1 |\n| 2 |")
	assert.True(t, errors.Is(err, compare.ErrRowCountMismatch))

	assert.Equal(t, 2.0, counter(t, f.metrics.ComparisonsTotal.WithLabelValues("unordered,strict", metrics.OutcomeSchemaError)))
}

func TestChecker_Policies(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	actual := table(t, "| x |\n| 1 |\n| 2 |\n| 3 |")

	tests := []struct {
		name     string
		expected string
		policy   compare.Policy
		want     bool
	}{
		{"unordered permutation", "| x |\n| 3 |\n| 1 |\n| 2 |", compare.Policy{Strict: true}, true},
		{"ordered permutation", "| x |\n| 3 |\n| 1 |\n| 2 |", compare.Policy{Order: true, Strict: true}, false},
		{"included subset", "| x |\n| 1 |\n| 3 |", compare.Policy{Strict: true, Included: true}, true},
		{"relax string", "| x |\n| \"1\" |\n| 2 |\n| 3 |", compare.Policy{}, true},
		{"strict string", "| x |\n| \"1\" |\n| 2 |\n| 3 |", compare.Policy{Strict: true}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, err := f.checker.CheckWithPolicy("", actual, tt.expected, tt.policy)
			require.NoError(t, err)
			assert.Equal(t, tt.want, outcome.Matched())
		})
	}
}

func TestChecker_CheckTable(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	actual := table(t, "| x |\n| 1 |")

	outcome, err := f.checker.CheckTable("", actual, table(t, "| x |\n| 1 |"), compare.DefaultPolicy())
	require.NoError(t, err)
	assert.True(t, outcome.Matched())

	_, err = f.checker.CheckTable("", nil, actual, compare.DefaultPolicy())
	assert.ErrorIs(t, err, compare.ErrNilDataSet)
}

func TestChecker_RememberAndPlaceholders(t *testing.T) {
	f := newFixture(t, DefaultConfig())

	players := value.ListValue(value.StringValue("Tim Duncan"), value.StringValue("Tony Parker"))
	require.NoError(t, f.checker.Remember("players", players))

	ds, err := f.checker.ParseTable("| p |\n| <[players]> |")
	require.NoError(t, err)
	require.Len(t, ds.Rows, 1)
	assert.True(t, value.Equal(players, ds.Rows[0][0]))

	_, err = f.checker.ParseTable("| p |\n| <[missing]> |")
	assert.ErrorIs(t, err, nbv.ErrUnknownVariable)

	assert.Error(t, f.checker.SetVariable("not-valid", "1"))
}

func TestChecker_RememberNonFiniteFloat(t *testing.T) {
	f := newFixture(t, DefaultConfig())

	err := f.checker.Remember("ratio", value.ListValue(value.FloatValue(math.NaN())))
	assert.ErrorIs(t, err, value.ErrNotLiteral)
	err = f.checker.Remember("ratio", value.FloatValue(math.Inf(1)))
	assert.ErrorIs(t, err, value.ErrNotLiteral)
	assert.NotContains(t, f.checker.Variables(), "ratio")
}

func TestChecker_Reset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Variables = map[string]string{"seeded": "[1, 2]"}
	f := newFixture(t, cfg)

	require.NoError(t, f.checker.SetVariable("later", "3"))
	assert.Len(t, f.checker.Variables(), 2)

	f.checker.Reset()
	vars := f.checker.Variables()
	assert.Equal(t, map[string]string{"seeded": "[1, 2]"}, vars)

	// the returned map is a copy
	vars["x"] = "1"
	assert.Len(t, f.checker.Variables(), 1)
}

func TestChecker_ParseValue(t *testing.T) {
	f := newFixture(t, DefaultConfig())

	v, err := f.checker.ParseValue(`hash("Tim Duncan")`)
	require.NoError(t, err)
	assert.Equal(t, "iVal", v.TypeName())

	_, err = f.checker.ParseValue(`nope(1)`)
	assert.ErrorIs(t, err, nbv.ErrUnknownFunction)
	assert.Equal(t, 1.0, counter(t, f.metrics.ParsesTotal.WithLabelValues(metrics.KindValue, "error")))
}

func TestChecker_MaxDepthFromConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxDepth = 2
	f := newFixture(t, cfg)

	_, err := f.checker.ParseValue("[[1]]")
	require.NoError(t, err)
	_, err = f.checker.ParseValue("[[[1]]]")
	assert.ErrorIs(t, err, nbv.ErrMaxDepth)
}

func TestChecker_CustomFunctions(t *testing.T) {
	functions := nbv.DefaultRegistry()
	require.NoError(t, functions.Register("double", func(args ...value.Value) (value.Value, error) {
		i, err := args[0].AsInt()
		if err != nil {
			return value.Value{}, err
		}
		return value.IntValue(i * 2), nil
	}))

	c, err := NewChecker(DefaultConfig(),
		WithLogger(logging.NewNopLogger()),
		WithMetrics(metrics.NewRegistry()),
		WithFunctions(functions),
	)
	require.NoError(t, err)

	v, err := c.ParseValue("double(21)")
	require.NoError(t, err)
	assert.True(t, value.Equal(value.IntValue(42), v))
}

func TestChecker_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxDepth = 0
	_, err := NewChecker(cfg, WithLogger(logging.NewNopLogger()), WithMetrics(metrics.NewRegistry()))
	assert.Error(t, err)
}

func TestChecker_Concurrent(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	actual := table(t, "| x |\n| 1 |\n| 2 |")

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcome, err := f.checker.Check("", actual, "| x |\n| 2 |\n| 1 |")
			if err != nil {
				errs <- err
				return
			}
			if !outcome.Matched() {
				errs <- outcome.Err()
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

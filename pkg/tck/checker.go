// Package tck drives expected-result checks for graph query scenarios: it
// parses expected tables, compares them with actual results and reports the
// first difference.
package tck

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-tck/pkg/compare"
	"github.com/dd0wney/cluso-tck/pkg/logging"
	"github.com/dd0wney/cluso-tck/pkg/metrics"
	"github.com/dd0wney/cluso-tck/pkg/nbv"
	"github.com/dd0wney/cluso-tck/pkg/validation"
	"github.com/dd0wney/cluso-tck/pkg/value"
)

// Checker parses expected tables and compares them against actual results.
// Its variable store is scoped to one scenario; create a Checker per scenario
// or call Reset between them. A Checker is safe for concurrent use.
type Checker struct {
	parser  *nbv.Parser
	logger  logging.Logger
	metrics *metrics.Registry
	policy  compare.Policy

	mu        sync.RWMutex
	variables map[string]string
	seed      map[string]string
}

// Option configures a Checker
type Option func(*checkerOptions)

type checkerOptions struct {
	logger    logging.Logger
	metrics   *metrics.Registry
	functions *nbv.Registry
}

// WithLogger sets the logger; the default is logging.DefaultLogger. A
// configured log level applies to the checker's own child logger only.
func WithLogger(l logging.Logger) Option {
	return func(o *checkerOptions) {
		o.logger = l
	}
}

// WithMetrics sets the metrics registry; the default is metrics.DefaultRegistry
func WithMetrics(m *metrics.Registry) Option {
	return func(o *checkerOptions) {
		o.metrics = m
	}
}

// WithFunctions sets the functions callable from expected literals; the
// default is nbv.DefaultRegistry
func WithFunctions(r *nbv.Registry) Option {
	return func(o *checkerOptions) {
		o.functions = r
	}
}

// NewChecker creates a checker from a validated configuration
func NewChecker(cfg Config, opts ...Option) (*Checker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := &checkerOptions{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = logging.DefaultLogger()
	}
	if o.metrics == nil {
		o.metrics = metrics.DefaultRegistry()
	}
	if o.functions == nil {
		o.functions = nbv.DefaultRegistry()
	}

	seed := make(map[string]string, len(cfg.Variables))
	for k, v := range cfg.Variables {
		seed[k] = v
	}

	logger := o.logger.With(logging.Component("tck"))
	if level, ok := cfg.level(); ok {
		logger = logger.WithLevel(level)
	}

	c := &Checker{
		parser:  nbv.NewParser(nbv.WithRegistry(o.functions), nbv.WithMaxDepth(cfg.MaxDepth)),
		logger:  logger,
		metrics: o.metrics,
		policy:  cfg.DefaultPolicy,
		seed:    seed,
	}
	c.Reset()
	return c, nil
}

// DefaultPolicy returns the policy configured for Check
func (c *Checker) DefaultPolicy() compare.Policy {
	return c.policy
}

// SetVariable stores literal text under name for <[name]> placeholders
func (c *Checker) SetVariable(name, literal string) error {
	if err := validation.ValidateVariableName(name); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.variables[name] = literal
	return nil
}

// Remember stores a value so a later table can refer to it as <[name]>.
// Values holding NaN or infinite floats are refused with value.ErrNotLiteral.
func (c *Checker) Remember(name string, v value.Value) error {
	literal, err := v.Literal()
	if err != nil {
		return fmt.Errorf("remember %s: %w", name, err)
	}
	return c.SetVariable(name, literal)
}

// Variables returns a copy of the placeholder map
func (c *Checker) Variables() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	vars := make(map[string]string, len(c.variables))
	for k, v := range c.variables {
		vars[k] = v
	}
	return vars
}

// Reset restores the placeholder map to the configured variables
func (c *Checker) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.variables = make(map[string]string, len(c.seed))
	for k, v := range c.seed {
		c.variables[k] = v
	}
}

// ParseValue parses a single literal
func (c *Checker) ParseValue(text string) (value.Value, error) {
	timer := logging.StartTimer(c.logger)
	v, err := c.parser.Parse(text)
	c.metrics.RecordParse(metrics.KindValue, parseCause(err), 0, timer.Elapsed())
	if err != nil {
		timer.Warn("failed to parse value", err, logging.String("text", text))
		return value.Value{}, err
	}
	timer.Debug("parsed value", logging.String("type", v.TypeName()))
	return v, nil
}

// ParseTable parses an expected table, substituting placeholders from the
// variable store
func (c *Checker) ParseTable(text string) (*value.DataSet, error) {
	return c.parseTable(c.logger, text)
}

func (c *Checker) parseTable(logger logging.Logger, text string) (*value.DataSet, error) {
	timer := logging.StartTimer(logger)
	ds, err := c.parser.ParseTable(text, c.Variables())
	if err != nil {
		c.metrics.RecordParse(metrics.KindTable, parseCause(err), 0, timer.Elapsed())
		timer.Warn("failed to parse expected table", err)
		return nil, err
	}
	c.metrics.RecordParse(metrics.KindTable, "", len(ds.Rows), timer.Elapsed())
	timer.Debug("parsed expected table", logging.Rows(len(ds.Rows)))
	return ds, nil
}

// Check parses expectedText and compares actual against it under the default
// policy
func (c *Checker) Check(query string, actual *value.DataSet, expectedText string) (*Outcome, error) {
	return c.CheckWithPolicy(query, actual, expectedText, c.policy)
}

// CheckWithPolicy parses expectedText and compares actual against it. Parse
// errors and schema mismatches are returned as errors; a failed match is an
// Outcome with Matched false.
func (c *Checker) CheckWithPolicy(query string, actual *value.DataSet, expectedText string, policy compare.Policy) (*Outcome, error) {
	id := uuid.New().String()
	logger := c.logger.With(logging.CheckID(id), logging.Policy(policy.String()))

	expected, err := c.parseTable(logger, expectedText)
	if err != nil {
		return nil, err
	}
	return c.compare(logger, id, query, actual, expected, policy)
}

// CheckTable compares actual against an already parsed expected table
func (c *Checker) CheckTable(query string, actual, expected *value.DataSet, policy compare.Policy) (*Outcome, error) {
	id := uuid.New().String()
	logger := c.logger.With(logging.CheckID(id), logging.Policy(policy.String()))
	return c.compare(logger, id, query, actual, expected, policy)
}

func (c *Checker) compare(logger logging.Logger, id, query string, actual, expected *value.DataSet, policy compare.Policy) (*Outcome, error) {
	defer c.metrics.TrackCheck()()

	timer := logging.StartTimer(logger)
	result, err := compare.New(policy).Compare(actual, expected)
	rows := 0
	if actual != nil {
		rows = len(actual.Rows)
	}
	if err != nil {
		c.metrics.RecordComparison(policy.String(), metrics.OutcomeSchemaError, rows, timer.Elapsed())
		timer.Warn("expected table does not fit the result", err, logging.Query(query))
		return nil, fmt.Errorf("check %s: %w", id, err)
	}

	outcome := &Outcome{
		ID:       id,
		Query:    query,
		Policy:   policy,
		Actual:   actual,
		Expected: expected,
		Result:   result,
	}
	if result.Matched {
		c.metrics.RecordComparison(policy.String(), metrics.OutcomeMatch, rows, timer.Elapsed())
		timer.Debug("result matched", logging.Rows(rows))
		return outcome, nil
	}

	c.metrics.RecordComparison(policy.String(), metrics.OutcomeMismatch, rows, timer.Elapsed())
	d := result.Diagnostic
	timer.Info("result mismatch",
		logging.Query(query),
		logging.RowIndex(d.ExpectedRow),
		logging.Column(d.Column),
		logging.String("reason", d.Reason),
	)
	return outcome, nil
}

// parseCause names the sentinel behind a parse failure for metrics labels
func parseCause(err error) string {
	if err == nil {
		return ""
	}
	var pe *nbv.ParseError
	if errors.As(err, &pe) && pe.Cause != nil {
		return pe.Cause.Error()
	}
	return "other"
}

// Outcome is the result of one check
type Outcome struct {
	ID       string
	Query    string
	Policy   compare.Policy
	Actual   *value.DataSet
	Expected *value.DataSet
	Result   *compare.Result
}

// Matched reports whether the actual result satisfied the expectation
func (o *Outcome) Matched() bool {
	return o.Result.Matched
}

// Report builds the human-readable failure report
func (o *Outcome) Report() *Report {
	return &Report{
		ID:         o.ID,
		Query:      o.Query,
		Policy:     o.Policy,
		Actual:     o.Actual,
		Expected:   o.Expected,
		Diagnostic: o.Result.Diagnostic,
	}
}

// Err returns a *MismatchError when the check failed, nil otherwise
func (o *Outcome) Err() error {
	if o.Result.Matched {
		return nil
	}
	return &MismatchError{Report: o.Report()}
}

package usecase

import (
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/shoplens/backend/internal/domain"
)

const (
	// DefaultPatternTimeout bounds the wall-clock time a single pattern may
	// spend scanning one source string.
	DefaultPatternTimeout = 50 * time.Millisecond

	// timeoutCheckInterval controls how often the scan loop reads the clock.
	// Checking every iteration would dominate the cost of short scans, so the
	// check is amortized; worst-case overrun is a handful of extra matches.
	timeoutCheckInterval = 8
)

// Pattern wraps a compiled regex together with the explicit match cursor that
// repeated (global) scanning requires. The cursor belongs to one Extract call
// at a time; the mutex serializes concurrent reuse of the same instance, and
// the cursor is unconditionally reset to zero when a scan ends so the next
// call starts at the beginning of its source.
type Pattern struct {
	re        *regexp.Regexp
	lastIndex int
	mu        sync.Mutex
}

// CompilePattern compiles expr into a Pattern.
func CompilePattern(expr string) (*Pattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &Pattern{re: re}, nil
}

// MustCompilePattern is like CompilePattern but panics on a bad expression.
// Used for the static store configuration table, where a compile failure is
// an authoring error caught at process start and by the table tests.
func MustCompilePattern(expr string) *Pattern {
	return &Pattern{re: regexp.MustCompile(expr)}
}

// String returns the source expression of the pattern.
func (p *Pattern) String() string {
	return p.re.String()
}

// NumCaptureGroups returns how many capturing groups the pattern declares.
func (p *Pattern) NumCaptureGroups() int {
	return p.re.NumSubexp()
}

// Extract scans source with the default timeout. See ExtractWithTimeout.
func (p *Pattern) Extract(source string) map[string]struct{} {
	return p.ExtractWithTimeout(source, DefaultPatternTimeout)
}

// ExtractWithTimeout repeatedly applies the pattern to source, collecting the
// first two capture groups of every match, lowercased, into a set.
//
// Guarantees:
//   - the scan stops once the set holds domain.MaxProductIDs entries,
//   - the scan stops once elapsed time reaches timeout (checked every few
//     iterations), returning whatever was collected,
//   - the match cursor is reset to zero on every exit path,
//   - a panic while matching is contained and the partial set is returned.
//
// The return value is always a non-nil set; diagnostic conditions are logged
// at debug level only and never surface as errors.
func (p *Pattern) ExtractWithTimeout(source string, timeout time.Duration) (results map[string]struct{}) {
	results = make(map[string]struct{})
	if source == "" {
		return results
	}

	p.mu.Lock()
	defer func() {
		p.lastIndex = 0
		p.mu.Unlock()
		if r := recover(); r != nil {
			// The pattern itself may be the fault, so it is not touched here.
			logrus.WithField("panic", r).
				Debug("pattern extraction panicked; returning partial results")
		}
	}()

	start := time.Now()
	for iteration := 0; p.lastIndex <= len(source); iteration++ {
		if iteration > 0 && iteration%timeoutCheckInterval == 0 && time.Since(start) >= timeout {
			logrus.WithField("pattern", p.String()).
				WithField("elapsed", time.Since(start)).
				Debug("pattern extraction timed out; returning partial results")
			return results
		}

		loc := p.re.FindStringSubmatchIndex(source[p.lastIndex:])
		if loc == nil {
			return results
		}

		base := p.lastIndex
		if loc[1] > loc[0] {
			p.lastIndex = base + loc[1]
		} else {
			// Zero-width match: advance one byte to guarantee progress.
			p.lastIndex = base + loc[1] + 1
		}

		for group := 1; group <= 2 && 2*group+1 < len(loc); group++ {
			s, e := loc[2*group], loc[2*group+1]
			if s < 0 || e <= s {
				continue
			}
			results[strings.ToLower(source[base+s:base+e])] = struct{}{}
			if len(results) >= domain.MaxProductIDs {
				logrus.WithField("pattern", p.String()).
					Debug("pattern extraction hit the result cap")
				return results
			}
		}
	}

	return results
}

package factory

import (
	"time"

	"github.com/dileepraotv/tt-sadhanam-sub000/internal/dependencies/mocks"
	"github.com/dileepraotv/tt-sadhanam-sub000/internal/storage/memory"
	"github.com/dileepraotv/tt-sadhanam-sub000/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// Queue tournament codes on MockRandom before creating tournaments.
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

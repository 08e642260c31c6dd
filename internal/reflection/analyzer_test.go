package reflection_test

import (
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junioryono/locator/internal/reflection"
)

// Test types
type Database struct {
	ConnectionString string
}

type Logger interface {
	Log(msg string)
}

type UserService struct {
	DB     *Database
	Logger Logger
}

// Test constructors
func NewDatabase(connStr string) *Database {
	return &Database{ConnectionString: connStr}
}

func NewUserService(db *Database, logger Logger) *UserService {
	return &UserService{DB: db, Logger: logger}
}

func NewUserServiceWithError(db *Database) (*UserService, error) {
	if db == nil {
		return nil, errors.New("database is required")
	}
	return &UserService{DB: db}, nil
}

const pkg = "github.com/junioryono/locator/internal/reflection_test"

func TestAnalyzer_Analyze(t *testing.T) {
	a := reflection.New()

	info, err := a.Analyze(NewUserService)
	require.NoError(t, err)

	assert.Equal(t, reflect.TypeOf(&UserService{}), info.Result)
	assert.False(t, info.HasErrorReturn)
	require.Len(t, info.Parameters, 2)

	assert.Equal(t, 0, info.Parameters[0].Index)
	assert.Equal(t, "*"+pkg+".Database", info.Parameters[0].TypeName)
	assert.True(t, info.Parameters[0].ClassLike)

	assert.Equal(t, pkg+".Logger", info.Parameters[1].TypeName)
	assert.True(t, info.Parameters[1].ClassLike)
}

func TestAnalyzer_ScalarParameters(t *testing.T) {
	info, err := reflection.New().Analyze(NewDatabase)
	require.NoError(t, err)

	require.Len(t, info.Parameters, 1)
	assert.Equal(t, "string", info.Parameters[0].TypeName)
	assert.False(t, info.Parameters[0].ClassLike)
}

func TestAnalyzer_ErrorReturn(t *testing.T) {
	info, err := reflection.New().Analyze(NewUserServiceWithError)
	require.NoError(t, err)
	assert.True(t, info.HasErrorReturn)
	assert.Equal(t, reflect.TypeOf(&UserService{}), info.Result)
}

func TestAnalyzer_Invalid(t *testing.T) {
	a := reflection.New()

	tests := []struct {
		name string
		ctor any
	}{
		{"nil", nil},
		{"typed nil", (func() *Database)(nil)},
		{"not a function", "NewDatabase"},
		{"no results", func() {}},
		{"error only", func() error { return nil }},
		{"bad second result", func() (*Database, string) { return nil, "" }},
		{"three results", func() (*Database, *Database, error) { return nil, nil, nil }},
		{"variadic", func(...string) *Database { return nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.Analyze(tt.ctor)
			assert.Error(t, err)
		})
	}
}

func TestAnalyzer_Cache(t *testing.T) {
	a := reflection.New()

	first, err := a.Analyze(NewUserService)
	require.NoError(t, err)
	second, err := a.Analyze(NewUserService)
	require.NoError(t, err)

	require.Len(t, second.Parameters, 2)
	assert.Same(t, &first.Parameters[0], &second.Parameters[0], "second analysis is served from the cache")

	other, err := reflection.New().Analyze(NewUserService)
	require.NoError(t, err)
	assert.NotSame(t, &first.Parameters[0], &other.Parameters[0])
}

func TestAnalyzer_ClosuresKeepTheirValue(t *testing.T) {
	a := reflection.New()

	build := func(conn string) func() *Database {
		return func() *Database { return NewDatabase(conn) }
	}

	first, err := a.Analyze(build("first"))
	require.NoError(t, err)
	second, err := a.Analyze(build("second"))
	require.NoError(t, err)

	got := second.Value.Call(nil)[0].Interface().(*Database)
	assert.Equal(t, "second", got.ConnectionString)

	got = first.Value.Call(nil)[0].Interface().(*Database)
	assert.Equal(t, "first", got.ConnectionString)
}

func TestAnalyzer_Concurrent(t *testing.T) {
	a := reflection.New()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := a.Analyze(NewUserService)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}

package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name        string
		raw         string
		expectErr   bool
		expectedStr string
		literal     bool
		matches     []string
		rejects     []string
	}{
		{
			name:        "literal",
			raw:         "cloud",
			expectedStr: "cloud",
			literal:     true,
			matches:     []string{"cloud"},
			rejects:     []string{"cloud-2", "proxy-server"},
		},
		{
			name:        "prefix",
			raw:         "prefix:b-",
			expectedStr: "prefix:b-",
			matches:     []string{"b-0-0", "b-4-4"},
			rejects:     []string{"a-0", "cloud", "B-0-0"},
		},
		{
			name:        "regexp",
			raw:         `regexp:^b-\d+-0$`,
			expectedStr: `regexp:^b-\d+-0$`,
			matches:     []string{"b-0-0", "b-12-0"},
			rejects:     []string{"b-0-1", "a-0"},
		},
		{
			name:        "glob",
			raw:         "a-*",
			expectedStr: "a-*",
			matches:     []string{"a-0", "a-4"},
			rejects:     []string{"b-0-0"},
		},
		{name: "error - empty", raw: "", expectErr: true},
		{name: "error - empty prefix", raw: "prefix:", expectErr: true},
		{name: "error - bad regexp", raw: "regexp:([", expectErr: true},
		{name: "error - bad glob", raw: "b-[", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := Parse(tc.raw)
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedStr, m.String())
			assert.Equal(t, tc.literal, IsLiteral(m))
			for _, name := range tc.matches {
				assert.True(t, m.Match(name), "expected %q to match %s", name, m)
			}
			for _, name := range tc.rejects {
				assert.False(t, m.Match(name), "expected %q not to match %s", name, m)
			}
		})
	}
}

func TestFunc(t *testing.T) {
	even := Func{Desc: "even bins", Fn: func(name string) bool { return len(name) > 0 && (name[len(name)-1]-'0')%2 == 0 }}
	assert.True(t, even.Match("b-0-2"))
	assert.False(t, even.Match("b-0-3"))
	assert.Equal(t, "func:even bins", even.String())
	assert.False(t, Func{Desc: "nil"}.Match("x"))
}

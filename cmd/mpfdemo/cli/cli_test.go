// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"bytes"
	"log/slog"
	"os"
	"strings"
	"path/filepath"
	"testing"

	"github.com/db47h/bigfloat/mpf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
	cmd := New()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestFlags(t *testing.T) {
	out, _, err := execute(t, "--prec", "80", "--terms", "100", "--digits", "5", "--log-fmt", "json")
	require.NoError(t, err)
	assert.Contains(t, out, "== Basic arithmetic ==\na       = 1.00000\n")
	assert.Contains(t, out, "== Leibniz series, 100 terms ==\n")
	assert.Contains(t, out, "== Default precision ==\n80 bits\n")

	out, _, err = execute(t, "--prec", "64", "--terms", "10", "--digits", "3", "--notation", "sci", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "a / b   = 3.333e-01\n")
	assert.Contains(t, out, "double  1/3 = 3.333e-01\n")
}

func TestEnv(t *testing.T) {
	t.Setenv("MPFDEMO_PREC", "100")
	t.Setenv("MPFDEMO_TERMS", "10")
	t.Setenv("MPFDEMO_LOG_LEVEL", "debug")
	t.Setenv("MPFDEMO_LOG_FMT", "logfmt")
	out, logs, err := execute(t)
	require.NoError(t, err)
	assert.Contains(t, out, "== Default precision ==\n100 bits\n")
	assert.Contains(t, logs, "level=DEBUG msg=configuration prec=100 terms=10 digits=50")

	// flags take precedence
	out, _, err = execute(t, "--prec", "70")
	require.NoError(t, err)
	assert.Contains(t, out, "70 bits\n")
}

func TestConfigFile(t *testing.T) {
	cf := filepath.Join(t.TempDir(), "mpfdemo.yaml")
	require.NoError(t, os.WriteFile(cf, []byte("prec: 90\nterms: 20\ndigits: 4\nlog-level: warn\n"), 0o600))
	out, logs, err := execute(t, "--config", cf)
	require.NoError(t, err)
	assert.Contains(t, out, "a / b   = 0.3333\n")
	assert.Contains(t, out, "90 bits\n")
	assert.Empty(t, logs)

	_, _, err = execute(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestErrors(t *testing.T) {
	for _, test := range []struct {
		args []string
		want string
	}{
		{[]string{"--notation", "hex"}, `invalid notation "hex": expected fixed or sci`},
		{[]string{"--log-fmt", "xml"}, `invalid log format "xml": expected one of tint, json, logfmt`},
		{[]string{"--log-level", "loud"}, `invalid log level "loud": expected debug, info, warn, or error`},
		{[]string{"--terms", "0"}, "number of terms must be positive, got 0"},
		{[]string{"--prec", "1", "--terms", "1"}, "invalid precision: 1 bits is outside of [2, 4294967295]"},
		{[]string{"extra"}, `unknown command "extra" for "mpfdemo"`},
	} {
		_, _, err := execute(t, test.args...)
		assert.EqualError(t, err, test.want, "%v", test.args)
	}
}

func TestErrorReportedOnce(t *testing.T) {
	_, stderr, err := execute(t, "--terms", "0", "--prec", "64")
	require.Error(t, err)
	assert.Equal(t, 1, strings.Count(stderr, "number of terms must be positive"), stderr)
	assert.Contains(t, stderr, "Error: number of terms must be positive, got 0")
}

func TestNotation(t *testing.T) {
	for s, want := range map[string]mpf.Notation{
		"fixed":      mpf.Fixed,
		"F":          mpf.Fixed,
		"sci":        mpf.Scientific,
		"Scientific": mpf.Scientific,
	} {
		got, err := notation(s)
		require.NoError(t, err, s)
		assert.Equal(t, want, got, s)
	}
}

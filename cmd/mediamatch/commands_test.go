package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/mediamatch/internal/check"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o644))
}

func collection(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "Box - Front", "Contra (USA).png"))
	touch(t, filepath.Join(dir, "Box - Front", "Nested", "Mega Man 2 (USA).jpg"))
	touch(t, filepath.Join(dir, "Clear Logo", "Contra (USA).png"))
	touch(t, filepath.Join(dir, "Notes", "readme.txt"))
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestBucketsCommand(t *testing.T) {
	dir := collection(t)

	out, err := execute(t, "buckets", dir)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Box - Front "))
	assert.True(t, strings.HasSuffix(lines[0], " 2"))
	assert.True(t, strings.HasPrefix(lines[1], "Clear Logo "))
	assert.True(t, strings.HasSuffix(lines[1], " 1"))
	assert.True(t, strings.HasPrefix(lines[2], "Total "))
	assert.True(t, strings.HasSuffix(lines[2], " 3"))
}

func TestBucketsCommand_SelectedBuckets(t *testing.T) {
	dir := collection(t)

	out, err := execute(t, "buckets", dir, "--no-color", "-b", "Clear Logo")
	require.NoError(t, err)
	assert.Contains(t, out, "Clear Logo")
	assert.NotContains(t, out, "Box - Front")
}

func TestBucketsCommand_NoCollection(t *testing.T) {
	_, err := execute(t, "buckets")
	assert.ErrorIs(t, err, check.ErrNoCollection)
}

func TestRunCommand_InvalidFlag(t *testing.T) {
	_, err := execute(t, "run", t.TempDir(), "--threshold", "10")
	require.Error(t, err)

	var logged *loggedError
	assert.False(t, errors.As(err, &logged), "validation errors are printed by main")
}

func TestRunCommand_PreflightFailure(t *testing.T) {
	dir := collection(t)

	_, err := execute(t, "run", dir, "--no-color")
	require.Error(t, err)

	var logged *loggedError
	require.True(t, errors.As(err, &logged))
	assert.Equal(t, exitFailure, logged.code)
	assert.ErrorIs(t, err, check.ErrNoMatchSource)
}

func TestRunCommand_Reconciles(t *testing.T) {
	dir := collection(t)
	root := t.TempDir()
	roms := filepath.Join(root, "roms")
	out := filepath.Join(root, "out")
	touch(t, filepath.Join(roms, "Contra (USA).nes"))
	touch(t, filepath.Join(roms, "Mega Man 2 (USA).nes"))

	_, err := execute(t, "run", dir, "--no-color", "-r", roms, "-o", out)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(out, "Box - Front", "Contra (USA).png"))
	assert.FileExists(t, filepath.Join(out, "Box - Front", "Mega Man 2 (USA).jpg"))
	assert.FileExists(t, filepath.Join(out, "Clear Logo", "Contra (USA).png"))
}

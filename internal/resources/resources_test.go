package resources_test

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowc/internal/descriptors"
	flowerrors "flowc/internal/errors"
	"flowc/internal/resources"
)

func testBundle() fstest.MapFS {
	return fstest.MapFS{
		"deploy.yaml": {Data: []byte("replicas: 3\n")},
		"app.cfg":     {Data: []byte("port=8080\n")},
	}
}

func TestExtractSpecCopiesMainAndReferencedFilesByName(t *testing.T) {
	t.Chdir(t.TempDir())
	bundle := testBundle()
	svc := descriptors.NewService("Ledger", "deploy.yaml", "app.cfg")

	require.NoError(t, resources.ExtractSpec(bundle, svc))

	assert.Equal(t, ".", svc.Spec.Directory)
	top, err := os.ReadFile("deploy.yaml")
	require.NoError(t, err)
	assert.Equal(t, "replicas: 3\n", string(top))
	ref, err := os.ReadFile("app.cfg")
	require.NoError(t, err)
	assert.Equal(t, "port=8080\n", string(ref))
}

func TestExtractSpecRejectsAServiceWithNoMainSpecFile(t *testing.T) {
	t.Chdir(t.TempDir())
	bundle := testBundle()
	svc := &descriptors.Service{DisplayName: "Ledger"}

	err := resources.ExtractSpec(bundle, svc)

	require.Error(t, err)
	var notFound *flowerrors.ResourceNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestExtractSpecSurfacesAFileMissingFromTheBundle(t *testing.T) {
	t.Chdir(t.TempDir())
	bundle := testBundle()
	svc := descriptors.NewService("Ledger", "does-not-exist.yaml")

	err := resources.ExtractSpec(bundle, svc)

	require.Error(t, err)
	var notFound *flowerrors.ResourceNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestExtractSpecIsANoOpOnceDirectoryIsAlreadySet(t *testing.T) {
	t.Chdir(t.TempDir())
	bundle := testBundle()
	svc := descriptors.NewService("Ledger", "does-not-exist.yaml")
	svc.Spec.Directory = "already-extracted"

	err := resources.ExtractSpec(bundle, svc)

	require.NoError(t, err, "a service whose spec directory is already set must return unchanged, never touching the bundle")
	assert.Equal(t, "already-extracted", svc.Spec.Directory)
}

func TestExtractSpecLeavesAnAlreadyPresentFileUntouched(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	bundle := testBundle()
	svc := descriptors.NewService("Ledger", "deploy.yaml")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "deploy.yaml"), []byte("stale"), 0o644))

	require.NoError(t, resources.ExtractSpec(bundle, svc))

	got, err := os.ReadFile(filepath.Join(dir, "deploy.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "stale", string(got), "a destination file present before extraction must be left untouched")
}

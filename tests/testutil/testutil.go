package testutil

import (
	_ "embed"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"
)

//go:embed Dockerfile.alpine
var alpineDockerfile string

// DummyAppDir returns a temp Docker build context with a one-layer alpine Dockerfile.
// Synthesis only hashes the directory, nothing is built.
func DummyAppDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Dockerfile"), []byte(alpineDockerfile), 0o644); err != nil {
		t.Fatalf("write-dockerfile: %v", err)
	}
	return dir
}

// TmpFile writes content to a file under a temp dir and returns its path.
func TmpFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("tmp-file: %v", err)
	}
	return path
}

// NewApp returns an app whose assets are staged under a temp dir, with optional context.
func NewApp(t *testing.T, context map[string]interface{}) awscdk.App {
	t.Helper()
	props := &awscdk.AppProps{Outdir: jsii.String(t.TempDir())}
	if len(context) > 0 {
		props.Context = &context
	}
	return awscdk.NewApp(props)
}

// TestEnv pins the stack to us-east-1, which Lambda@Edge functions require.
func TestEnv() *awscdk.Environment {
	return &awscdk.Environment{
		Account: jsii.String("123456789012"),
		Region:  jsii.String("us-east-1"),
	}
}

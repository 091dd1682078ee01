package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/truepill/openapi-to-joi/internal/config"
)

const petstoreYAML = `openapi: 3.0.3
info:
  title: Pets
  version: 1.0.0
paths:
  /pets:
    get:
      operationId: listPets
      parameters:
        - name: limit
          in: query
          description: Page size
          schema:
            type: integer
            description: How many items to return
      responses:
        "200":
          description: ok
components:
  schemas:
    Pet:
      type: object
      required: [id]
      properties:
        id:
          type: integer
          description: Pet identifier
`

type stubPrompter struct {
	inputs   map[string]string
	confirms map[string]bool
	asked    []string
}

func (s *stubPrompter) Input(_ context.Context, message, def string, _ bool) (string, error) {
	s.asked = append(s.asked, message)
	if v, ok := s.inputs[message]; ok {
		return v, nil
	}
	return def, nil
}

func (s *stubPrompter) Confirm(_ context.Context, message string, def bool) (bool, error) {
	s.asked = append(s.asked, message)
	if v, ok := s.confirms[message]; ok {
		return v, nil
	}
	return def, nil
}

func execute(t *testing.T, p prompter, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(p)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func writeSpec(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "openapi.yaml")
	require.NoError(t, os.WriteFile(path, []byte(petstoreYAML), 0644))
	return path
}

func TestRunWritesModule(t *testing.T) {
	dir := t.TempDir()
	source := writeSpec(t, dir)
	output := filepath.Join(dir, "out", "schemas.ts")

	stdout, err := execute(t, &stubPrompter{}, source, "-o", output)
	require.NoError(t, err)
	assert.Equal(t, "File created: "+output+"\n", stdout)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, `import Joi from "joi";`)
	assert.Contains(t, content, "listPets: {")
	assert.Contains(t, content, `.description("How many items to return")`)
	// описание самого параметра в код не попадает
	assert.NotContains(t, content, "Page size")
	assert.Contains(t, content, `.description("Pet identifier")`)
	assert.Contains(t, content, ".unknown(true)")
}

func TestRunSkipFlags(t *testing.T) {
	dir := t.TempDir()
	source := writeSpec(t, dir)
	output := filepath.Join(dir, "schemas.ts")

	_, err := execute(t, &stubPrompter{}, source, "-o", output, "--skip-descriptions", "--skip-unknowns")
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.NotContains(t, string(data), ".description(")
	assert.NotContains(t, string(data), ".unknown(true)")
}

func TestRunFromConfigFile(t *testing.T) {
	dir := t.TempDir()
	source := writeSpec(t, dir)
	output := filepath.Join(dir, "from-config.ts")
	cfgPath := filepath.Join(dir, "openapi-to-joi.yaml")
	cfgData := "source: " + source + "\noutput: " + filepath.Join(dir, "ignored.ts") + "\nskipDescriptions: true\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgData), 0644))

	// флаг -o переопределяет output из конфига
	_, err := execute(t, &stubPrompter{}, "-c", cfgPath, "-o", output)
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.NotContains(t, string(data), ".description(")

	_, err = os.Stat(filepath.Join(dir, "ignored.ts"))
	assert.True(t, os.IsNotExist(err))
}

func TestRunInteractive(t *testing.T) {
	dir := t.TempDir()
	source := writeSpec(t, dir)
	output := filepath.Join(dir, "prompted.ts")

	p := &stubPrompter{
		inputs: map[string]string{
			"OpenAPI document (path or URL):": source,
			"Output file:":                    output,
		},
		confirms: map[string]bool{"Skip descriptions?": true},
	}
	stdout, err := execute(t, p, "-i")
	require.NoError(t, err)
	assert.Equal(t, "File created: "+output+"\n", stdout)
	assert.Equal(t, []string{
		"OpenAPI document (path or URL):",
		"Output file:",
		"Prettier config (empty for defaults):",
		"Skip descriptions?",
	}, p.asked)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.NotContains(t, string(data), ".description(")
}

func TestRunInteractiveAsksOnlyMissing(t *testing.T) {
	dir := t.TempDir()
	source := writeSpec(t, dir)
	output := filepath.Join(dir, "schemas.ts")

	p := &stubPrompter{}
	_, err := execute(t, p, source, "-o", output, "--skip-descriptions", "-i")
	require.NoError(t, err)
	assert.Equal(t, []string{"Prettier config (empty for defaults):"}, p.asked)
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing source", func(t *testing.T) {
		_, err := execute(t, &stubPrompter{}, "-o", filepath.Join(dir, "x.ts"))
		assert.ErrorIs(t, err, config.ErrSourceRequired)
	})

	t.Run("missing output", func(t *testing.T) {
		_, err := execute(t, &stubPrompter{}, writeSpec(t, dir))
		assert.ErrorIs(t, err, config.ErrOutputRequired)
	})

	t.Run("invalid timeout", func(t *testing.T) {
		_, err := execute(t, &stubPrompter{}, writeSpec(t, dir), "-o", filepath.Join(dir, "x.ts"), "--timeout", "never")
		assert.ErrorIs(t, err, config.ErrInvalidTimeout)
	})

	t.Run("broken config file", func(t *testing.T) {
		cfgPath := filepath.Join(dir, "broken.json")
		require.NoError(t, os.WriteFile(cfgPath, []byte("{"), 0644))

		_, err := execute(t, &stubPrompter{}, "-c", cfgPath)
		assert.ErrorContains(t, err, "failed to load config")
	})
}

package cli

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vvka-141/shpload/internal/config"
	"github.com/vvka-141/shpload/internal/logging"
	"github.com/vvka-141/shpload/pkg/shpload"
)

func resetLoadFlags(t *testing.T) {
	t.Helper()
	old := loadFlags
	loadFlags = loadFlagValues{}
	t.Cleanup(func() { loadFlags = old })
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

func TestParseFlags_ShorthandSurface(t *testing.T) {
	resetLoadFlags(t)

	err := rootCmd.ParseFlags([]string{"-s", "soil", "-t", "geology", "-p", "4267", "-n", "2261", "-v"})
	require.NoError(t, err)

	require.Equal(t, "soil", loadFlags.schema)
	require.Equal(t, "geology", loadFlags.table)
	require.Equal(t, 4267, loadFlags.srid)
	require.Equal(t, 2261, loadFlags.targetSRID)
	require.True(t, loadFlags.verbose)
}

func TestParseFlags_UnknownFlagIsUsageError(t *testing.T) {
	resetLoadFlags(t)

	err := rootCmd.ParseFlags([]string{"--bogus"})
	require.Error(t, err)
	require.Equal(t, shpload.ExitUsageError, shpload.ExitCodeForError(err))
}

func TestParseFlags_NonIntegerProjectionIsUsageError(t *testing.T) {
	resetLoadFlags(t)

	err := rootCmd.ParseFlags([]string{"-p", "wgs84"})
	require.Error(t, err)
	require.Equal(t, shpload.ExitUsageError, shpload.ExitCodeForError(err))
}

func TestBuildLoadRequest_FromFlags(t *testing.T) {
	resetLoadFlags(t)
	loadFlags.schema = "soil"
	loadFlags.table = "geology"
	loadFlags.srid = 4267
	loadFlags.targetSRID = 2261
	loadFlags.verbose = true

	req := buildLoadRequest("/data/ny.shp", nil)

	require.Equal(t, "soil", req.Schema)
	require.Equal(t, "geology", req.Table)
	require.Equal(t, 4267, req.SourceSRID)
	require.Equal(t, 2261, req.TargetSRID)
	require.Equal(t, "/data/ny.shp", req.ShapefilePath)
	require.True(t, req.Verbose)
	require.NoError(t, req.Validate())
}

func TestBuildLoadRequest_ProjectConfigFillsGaps(t *testing.T) {
	resetLoadFlags(t)
	loadFlags.table = "geology"

	projectConfig := &config.ProjectConfig{
		Load: config.LoadConfig{Schema: "soil", SourceSRID: 4267, TargetSRID: 2261},
	}

	req := buildLoadRequest("/data/ny.shp", projectConfig)
	require.Equal(t, "soil", req.Schema)
	require.Equal(t, 4267, req.SourceSRID)
	require.Equal(t, 2261, req.TargetSRID)
}

func TestBuildLoadRequest_FlagsBeatProjectConfig(t *testing.T) {
	resetLoadFlags(t)
	loadFlags.schema = "parcels"
	loadFlags.table = "lots"
	loadFlags.srid = 4326

	projectConfig := &config.ProjectConfig{
		Load: config.LoadConfig{Schema: "soil", SourceSRID: 4267},
	}

	req := buildLoadRequest("/data/lots.shp", projectConfig)
	require.Equal(t, "parcels", req.Schema)
	require.Equal(t, 4326, req.SourceSRID)
}

func TestBuildLoadRequest_MissingRequiredFlags(t *testing.T) {
	tests := []struct {
		name   string
		mutate func()
	}{
		{"missing schema", func() { loadFlags.table = "geology"; loadFlags.srid = 4267 }},
		{"missing table", func() { loadFlags.schema = "soil"; loadFlags.srid = 4267 }},
		{"missing projection", func() { loadFlags.schema = "soil"; loadFlags.table = "geology" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetLoadFlags(t)
			tt.mutate()

			err := buildLoadRequest("/data/ny.shp", nil).Validate()
			require.Error(t, err)
			require.ErrorIs(t, err, shpload.ErrInvalidRequest)
		})
	}
}

func TestEchoResolvedConfig_WithTargetProjection(t *testing.T) {
	req := &shpload.LoadRequest{
		Schema:        "soil",
		Table:         "geology",
		SourceSRID:    4267,
		TargetSRID:    2261,
		ShapefilePath: "/data/ny.shp",
		Verbose:       true,
	}
	connConfig := &shpload.ConnectionConfig{
		Host: "localhost", Port: 5432, Database: "postgres", Username: "gis",
	}

	out := captureStdout(t, func() {
		echoResolvedConfig(logging.NewConsoleLogger(true), req, connConfig)
	})

	require.Contains(t, out, "schema=soil\n")
	require.Contains(t, out, "table=geology\n")
	require.Contains(t, out, "sourceProjection=4267\n")
	require.Contains(t, out, "targetProjection=2261\n")
	require.Contains(t, out, "shapefile=/data/ny.shp\n")
}

func TestEchoResolvedConfig_WithoutTargetProjection(t *testing.T) {
	req := &shpload.LoadRequest{
		Schema:        "soil",
		Table:         "geology",
		SourceSRID:    4267,
		ShapefilePath: "/data/ny.shp",
		Verbose:       true,
	}
	connConfig := &shpload.ConnectionConfig{Host: "localhost", Port: 5432, Database: "postgres"}

	out := captureStdout(t, func() {
		echoResolvedConfig(logging.NewConsoleLogger(true), req, connConfig)
	})

	require.Contains(t, out, "sourceProjection=4267\n")
	require.NotContains(t, out, "targetProjection")
}

func TestEchoResolvedConfig_SilentWhenNotVerbose(t *testing.T) {
	req := &shpload.LoadRequest{
		Schema: "soil", Table: "geology", SourceSRID: 4267, ShapefilePath: "/data/ny.shp",
	}

	out := captureStdout(t, func() {
		echoResolvedConfig(logging.NewConsoleLogger(false), req, &shpload.ConnectionConfig{})
	})
	require.Empty(t, out)
}

func TestRootCmd_RequiresExactlyOneShapefile(t *testing.T) {
	require.Error(t, rootCmd.Args(rootCmd, []string{}))
	require.Error(t, rootCmd.Args(rootCmd, []string{"a.shp", "b.shp"}))
	require.NoError(t, rootCmd.Args(rootCmd, []string{"/data/ny.shp"}))
}

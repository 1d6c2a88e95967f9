package printing_test

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"io"
	"net/http/httptest"
	"testing"

	"brother-bridge/feature/machines"
	machinemodels "brother-bridge/feature/machines/models"
	"brother-bridge/feature/printing"
	"brother-bridge/feature/printing/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func testApp(t *testing.T, out string) (*fiber.App, *machinemodels.Machine) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Discard,
	})
	require.NoError(t, err)

	app := fiber.New()

	machineFeature := machines.NewFeature(db, zap.NewNop())
	require.NoError(t, machineFeature.Load(app))

	printFeature := printing.NewFeature(printing.Config{TimeoutSeconds: 5}, db,
		machineFeature.Service(), nil, "labels", zap.NewNop())
	require.NoError(t, printFeature.Load(app))

	m, err := machineFeature.Service().Create(context.Background(), machinemodels.MachineRequest{
		Name: "HTTP Printer",
		Settings: map[string]any{
			"model":  "QL-820NWB",
			"media":  "62",
			"target": "file://" + out,
		},
	})
	require.NoError(t, err)

	return app, m
}

func TestHandlePrint(t *testing.T) {
	app, m := testApp(t, t.TempDir()+"/printer.bin")

	var body bytes.Buffer
	require.NoError(t, png.Encode(&body, labelImage(696, 300)))

	req := httptest.NewRequest("POST", "/print/"+m.ID, &body)
	req.Header.Set("Content-Type", "image/png")
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var job models.PrintJob
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &job))
	assert.Equal(t, models.StatusDone, job.Status)

	// The job is retrievable afterwards.
	resp, err = app.Test(httptest.NewRequest("GET", "/jobs/"+job.ID, nil), 2000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestHandlePrintBadImage(t *testing.T) {
	app, m := testApp(t, t.TempDir()+"/printer.bin")

	req := httptest.NewRequest("POST", "/print/"+m.ID, bytes.NewReader([]byte("garbage")))
	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandlePrintConversionErrorSurfacesVerbatim(t *testing.T) {
	app, m := testApp(t, t.TempDir()+"/printer.bin")

	var body bytes.Buffer
	require.NoError(t, png.Encode(&body, labelImage(100, 100)))

	req := httptest.NewRequest("POST", "/print/"+m.ID, &body)
	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)

	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), "does not match printable width")
}

func TestHandleTestPrint(t *testing.T) {
	app, m := testApp(t, t.TempDir()+"/printer.bin")

	resp, err := app.Test(httptest.NewRequest("POST", "/machines/"+m.ID+"/test", nil), 5000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestHandleUnknownMachine(t *testing.T) {
	app, _ := testApp(t, t.TempDir()+"/printer.bin")

	var body bytes.Buffer
	require.NoError(t, png.Encode(&body, labelImage(696, 300)))

	req := httptest.NewRequest("POST", "/print/ghost", &body)
	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

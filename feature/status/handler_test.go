package status_test

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http/httptest"
	"testing"

	"brother-bridge/core/storage/mocks"
	"brother-bridge/feature/machines"
	machinemodels "brother-bridge/feature/machines/models"
	"brother-bridge/feature/status"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestHandleStatus(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Discard,
	})
	require.NoError(t, err)

	machineSvc := machines.NewService(db, zap.NewNop())
	require.NoError(t, machineSvc.Migrate())

	// A reachable printer.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			conn.Close()
		}
	}()

	_, err = machineSvc.Create(context.Background(), machinemodels.MachineRequest{
		Name:     "Reachable",
		Settings: map[string]any{"target": "tcp://" + ln.Addr().String()},
	})
	require.NoError(t, err)

	// A vanished device node.
	_, err = machineSvc.Create(context.Background(), machinemodels.MachineRequest{
		Name:     "Vanished",
		Settings: map[string]any{"target": "file:///nonexistent/lp0"},
	})
	require.NoError(t, err)

	client := &mocks.Client{}
	client.On("BucketExists", mock.Anything, "labels").Return(true, nil)

	app := fiber.New()
	feature := status.NewFeature(db, client, "labels", true, machineSvc, zap.NewNop())
	require.NoError(t, feature.Load(app))

	resp, err := app.Test(httptest.NewRequest("GET", "/status", nil), 10000)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var report status.Report
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &report))

	assert.Equal(t, "degraded", report.Status)
	assert.Equal(t, "ok", report.Database.Status)
	assert.Equal(t, "ok", report.Storage.Status)

	require.Len(t, report.Machines, 2)
	byName := map[string]status.MachineResult{}
	for _, m := range report.Machines {
		byName[m.Slug] = m
	}
	assert.Equal(t, "ok", byName["reachable"].Status)
	assert.Equal(t, "error", byName["vanished"].Status)
	assert.Contains(t, byName["vanished"].Error, "device not present")
}

func TestHandleStatusStorageDisabled(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Discard,
	})
	require.NoError(t, err)

	machineSvc := machines.NewService(db, zap.NewNop())
	require.NoError(t, machineSvc.Migrate())

	app := fiber.New()
	feature := status.NewFeature(db, nil, "labels", false, machineSvc, zap.NewNop())
	require.NoError(t, feature.Load(app))

	resp, err := app.Test(httptest.NewRequest("GET", "/status", nil), 5000)
	require.NoError(t, err)

	var report status.Report
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &report))

	assert.Equal(t, "ok", report.Status)
	assert.Equal(t, "disabled", report.Storage.Status)
}

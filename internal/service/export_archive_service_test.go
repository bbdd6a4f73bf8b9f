package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/bank-sampah-api/pkg/storage"
)

func newTestArchive(t *testing.T) *ExportArchiveService {
	t.Helper()

	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	signer := storage.NewSignedURLSigner("test-secret", time.Hour)
	svc := NewExportArchiveService(store, signer, nil, ExportArchiveConfig{DownloadTTL: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	svc.Start(ctx)
	t.Cleanup(func() {
		cancel()
		svc.Stop()
	})
	return svc
}

func TestExportArchiveRoundTrip(t *testing.T) {
	svc := newTestArchive(t)

	token, err := svc.Archive(&ReportFile{
		Filename:    "laporan-setoran-20260101-000000.csv",
		ContentType: "text/csv",
		Data:        []byte("NIS,Nama\n12345,Budi\n"),
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// The write happens on a worker, poll until it lands.
	require.Eventually(t, func() bool {
		file, _, err := svc.Open(token)
		if err != nil {
			return false
		}
		defer file.Close()
		data, err := io.ReadAll(file)
		return err == nil && string(data) == "NIS,Nama\n12345,Budi\n"
	}, time.Second, 10*time.Millisecond)

	file, filename, err := svc.Open(token)
	require.NoError(t, err)
	require.NoError(t, file.Close())
	require.Equal(t, "laporan-setoran-20260101-000000.csv", filename)
}

func TestExportArchiveRejectsEmptyFile(t *testing.T) {
	svc := newTestArchive(t)

	_, err := svc.Archive(nil)
	require.Error(t, err)

	_, err = svc.Archive(&ReportFile{Filename: "empty.csv"})
	require.Error(t, err)
}

func TestExportArchiveRejectsTamperedToken(t *testing.T) {
	svc := newTestArchive(t)

	token, err := svc.Archive(&ReportFile{
		Filename: "laporan.csv",
		Data:     []byte("x"),
	})
	require.NoError(t, err)

	_, _, err = svc.Open(token + "x")
	require.Error(t, err)
}

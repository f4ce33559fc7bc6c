package gridstore

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/tailscale/tailsql/server/tailsql"
	"tailscale.com/tsweb"

	"github.com/banshee-data/voxelgrid/internal/httputil"
	"github.com/banshee-data/voxelgrid/internal/security"
)

// AttachAdminRoutes mounts debug handlers for the snapshot database on mux:
// live SQL via tailsql, a JSON snapshot listing and an on-demand backup
// download.
func (s *Store) AttachAdminRoutes(mux *http.ServeMux) error {
	debug := tsweb.Debugger(mux)
	tsql, err := tailsql.NewServer(tailsql.Options{
		RoutePrefix: "/debug/tailsql/",
	})
	if err != nil {
		return fmt.Errorf("failed to create tailsql server: %w", err)
	}
	tsql.SetDB("sqlite://"+s.path, s.DB, &tailsql.DBOptions{
		Label: "Grid snapshots",
	})
	debug.Handle("tailsql/", "SQL live debugging", tsql.NewMux())
	debug.Handle("snapshots", "List snapshots of a grid (?grid=name)", s.SnapshotsHandler())
	debug.Handle("backup", "Create and download a backup of the snapshot database now", s.BackupHandler())
	return nil
}

// snapshotInfo is the JSON shape of one ListSnapshots row.
type snapshotInfo struct {
	ID     string    `json:"id"`
	Grid   string    `json:"grid"`
	Taken  time.Time `json:"taken"`
	Dims   string    `json:"dims"`
	Reason string    `json:"reason,omitempty"`
}

// SnapshotsHandler serves GET ?grid=name as a JSON array of snapshot
// metadata, newest first. With ?id=X it serves that single snapshot's
// metadata instead.
func (s *Store) SnapshotsHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			httputil.MethodNotAllowed(w)
			return
		}
		q := r.URL.Query()
		if id := q.Get("id"); id != "" {
			snap, err := s.GetSnapshot(id)
			if errors.Is(err, ErrNotFound) {
				httputil.NotFound(w, err.Error())
				return
			}
			if err != nil {
				httputil.InternalServerError(w, err.Error())
				return
			}
			httputil.WriteJSONOK(w, toInfo(*snap))
			return
		}

		name := q.Get("grid")
		if name == "" {
			httputil.BadRequest(w, "missing grid or id parameter")
			return
		}
		snaps, err := s.ListSnapshots(name)
		if err != nil {
			httputil.InternalServerError(w, err.Error())
			return
		}
		out := make([]snapshotInfo, 0, len(snaps))
		for _, snap := range snaps {
			out = append(out, toInfo(snap))
		}
		httputil.WriteJSONOK(w, out)
	})
}

func toInfo(snap Snapshot) snapshotInfo {
	return snapshotInfo{
		ID:     snap.SnapshotID,
		Grid:   snap.GridName,
		Taken:  time.Unix(0, snap.TakenUnixNanos).UTC(),
		Dims:   fmt.Sprintf("%dx%dx%d", snap.SizeX, snap.SizeY, snap.SizeZ),
		Reason: snap.SnapshotReason,
	}
}

// BackupHandler writes a VACUUM INTO copy of the database to the temp
// directory, streams it to the caller and removes it.
func (s *Store) BackupHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := security.SanitizeFilename(fmt.Sprintf("grid-backup-%d.db", time.Now().UnixNano()))
		dir := os.TempDir()
		backupPath := filepath.Join(dir, name)
		if err := security.CheckWithinDir(backupPath, dir); err != nil {
			httputil.InternalServerError(w, err.Error())
			return
		}
		if _, err := s.Exec("VACUUM INTO ?", backupPath); err != nil {
			httputil.InternalServerError(w, fmt.Sprintf("failed to create backup: %v", err))
			return
		}
		defer os.Remove(backupPath)

		logf("serving backup %s", backupPath)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", name))
		w.Header().Set("Content-Type", "application/octet-stream")
		http.ServeFile(w, r, backupPath)
	})
}

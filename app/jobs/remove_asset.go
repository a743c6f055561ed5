// Package jobs defines the background jobs the application dispatches.
package jobs

import (
	"github.com/shashiranjanraj/suby/pkg/logger"
	"github.com/shashiranjanraj/suby/pkg/queue"
	"github.com/shashiranjanraj/suby/pkg/storage"
)

// RemoveAssetJob deletes a stored upload. Dispatched when a firm or
// product that owns an image is removed.
type RemoveAssetJob struct {
	Path string `json:"path"`
}

// Handle deletes the object from the default storage disk. Deleting an
// object that is already gone succeeds.
func (j *RemoveAssetJob) Handle() error {
	return storage.Delete(j.Path)
}

// Register installs the job constructors on the queue. Call once at boot
// before StartWorkers.
func Register() {
	queue.Register("*jobs.RemoveAssetJob", func() queue.Job { return &RemoveAssetJob{} })
}

// AssetCleaner dispatches asset removals on the queue. Dispatch failures
// are logged and swallowed; asset cleanup never fails the caller.
type AssetCleaner struct{}

func (AssetCleaner) Remove(path string) {
	if err := queue.Dispatch(&RemoveAssetJob{Path: path}); err != nil {
		logger.Error("asset cleanup dispatch failed", "path", path, "error", err)
	}
}

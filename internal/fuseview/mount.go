//go:build linux
// +build linux

package fuseview

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"bazil.org/fuse"
	fusefs "bazil.org/fuse/fs"

	"github.com/corvidae/rawvol/internal/logger"
	"github.com/corvidae/rawvol/internal/volume"
)

// Mount serves vol read-only at mountpoint until a termination signal
// arrives or the filesystem is unmounted externally.
func Mount(mountpoint string, vol volume.Volume, log *logger.Logger) error {
	created, err := PrepareMountpoint(mountpoint)
	if err != nil {
		return err
	}
	if created {
		defer os.Remove(mountpoint)
	}

	c, err := fuse.Mount(mountpoint)
	if err != nil {
		return fmt.Errorf("fuseview: mount %s: %w", mountpoint, err)
	}
	defer c.Close()

	vfs := &volumeFS{vol: vol}

	serveErr := make(chan error, 1)
	go func() {
		srv := fusefs.New(c, nil)
		serveErr <- srv.Serve(vfs)
	}()

	return waitForUmount(mountpoint, serveErr, log)
}

func waitForUmount(mountpoint string, serveErr <-chan error, log *logger.Logger) error {
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)

	if log != nil {
		log.Infof("serving %s, waiting for termination signal", mountpoint)
	}

	const maxUnmountRetries = 3
	unmountAttempts := 0

	for {
		select {
		case err := <-serveErr:
			return err
		case sig := <-sigc:
			if log != nil {
				log.Infof("signal received: %v", sig)
			}
			if unmountAttempts >= maxUnmountRetries {
				return fmt.Errorf("fuseview: exceeded %d unmount attempts for %s", maxUnmountRetries, mountpoint)
			}
			if err := fuse.Unmount(mountpoint); err == nil {
				if log != nil {
					log.Infof("unmounted %s", mountpoint)
				}
				return nil
			} else if log != nil {
				log.Warnf("unmount failed: %v", err)
			}
			unmountAttempts++
		}
	}
}

// PrepareMountpoint ensures mountpoint is a valid, empty directory,
// creating it if absent. Returns true if it created the directory.
func PrepareMountpoint(mountpoint string) (bool, error) {
	finfo, err := os.Stat(mountpoint)
	if errors.Is(err, os.ErrNotExist) {
		if err := os.Mkdir(mountpoint, 0755); err != nil {
			return false, fmt.Errorf("fuseview: creating mountpoint %s: %w", mountpoint, err)
		}
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("fuseview: stat mountpoint %s: %w", mountpoint, err)
	}
	if !finfo.IsDir() {
		return false, fmt.Errorf("fuseview: mountpoint %s is not a directory", mountpoint)
	}

	empty, err := isDirEmpty(mountpoint)
	if err != nil {
		return false, fmt.Errorf("fuseview: checking mountpoint %s: %w", mountpoint, err)
	}
	if !empty {
		return false, fmt.Errorf("fuseview: mountpoint %s is not empty", mountpoint)
	}
	return false, nil
}

func isDirEmpty(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	_, err = f.Readdir(1)
	switch {
	case errors.Is(err, io.EOF):
		return true, nil
	case err != nil:
		return false, err
	default:
		return false, nil
	}
}

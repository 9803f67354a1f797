package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/ossrs/go-oryx-lib/errors"
	"github.com/ossrs/go-oryx-lib/logger"
)

type outputFile struct {
	Path string
	Data []byte
}

// publish writes every file next to its destination under a temporary name
// and renames them into place once all of them are written. Nothing is
// published when a write fails.
func publish(ctx context.Context, files []outputFile) (err error) {
	var temps []string

	defer func() {
		if err == nil {
			return
		}

		for _, temp := range temps {
			if r0 := os.Remove(temp); r0 != nil && !os.IsNotExist(r0) {
				logger.Wf(ctx, "ignore remove %v err %v", temp, r0)
			}
		}
	}()

	for _, file := range files {
		var temp = fmt.Sprintf("%v.%v.tmp", file.Path, uuid.NewString())

		if err := os.WriteFile(temp, file.Data, 0644); err != nil {
			return errors.Wrapf(err, "write %v", temp)
		}

		temps = append(temps, temp)
	}

	for i, file := range files {
		if err := os.Rename(temps[i], file.Path); err != nil {
			return errors.Wrapf(err, "rename %v to %v", temps[i], file.Path)
		}
	}

	return nil
}

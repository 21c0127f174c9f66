package gfx

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/bodgit/gfx/gallery"
	"github.com/bodgit/gfx/ppm"
	"github.com/bodgit/gfx/thumb"
)

func (l *Library) findDirectories(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(dir string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if info.Name()[0] == '.' {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// Ignore anything that isn't a directory
			if !info.Mode().IsDir() {
				return nil
			}

			select {
			case out <- dir:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (l *Library) directoryWorker(ctx context.Context, in <-chan string) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for dir := range in {
			idx := gallery.New()
			if err := filepath.Walk(dir, func(file string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}

				// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
				if info.Name()[0] == '.' {
					if info.Mode().IsDir() {
						return filepath.SkipDir
					}
					return nil
				}

				// Ignore anything that isn't a normal file
				if !info.Mode().IsRegular() {
					return nil
				}

				// Ignore any file greater than 64 MB
				if info.Size() > 64<<(10*2) {
					return nil
				}

				if filepath.Ext(file) != ".ppm" {
					return nil
				}

				// Check files are in the "top" directory; subdirectories
				// arrive through the channel in their own right
				if filepath.Dir(file) != dir {
					return nil
				}

				m, err := ppm.ReadFile(file)
				if err != nil {
					// A file that doesn't decode isn't fatal to the scan
					l.logger.Printf("Skipping \"%s\": %v\n", file, err)
					return nil
				}

				crc, err := crcFile(file)
				if err != nil {
					return err
				}

				b := new(bytes.Buffer)
				if err := thumb.Encode(b, m); err != nil {
					return err
				}

				if err := l.db.AddImage(file, m.Width(), m.Height(), crcString(crc), b.Bytes()); err != nil {
					return err
				}

				return idx.Set(crc, b.Bytes())
			}); err != nil {
				errc <- err
				return
			}

			if idx.Length() > 0 {
				b, err := idx.MarshalBinary()
				if err != nil {
					errc <- err
					return
				}

				f, err := os.Create(filepath.Join(dir, gallery.Filename))
				if err != nil {
					errc <- err
					return
				}

				if _, err = f.Write(b); err != nil {
					f.Close()
					errc <- err
					return
				}

				if err = f.Close(); err != nil {
					errc <- err
					return
				}
			}
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Scan walks the directory tree rooted at path, cataloguing every PPM image
// found and writing a gallery index alongside the images in each directory
// that contains any.
func (l *Library) Scan(path string) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	dirs, errc, err := l.findDirectories(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < 10; i++ {
		errc, err := l.directoryWorker(ctx, dirs)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}

// Package fetch downloads and unpacks corpus files into a scratch
// directory, reusing whatever earlier runs left there.
package fetch

import (
	"compress/gzip"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"

	pb "github.com/cheggaaa/pb/v3"
	"github.com/google/uuid"

	kio "github.com/akshay120860/tensor2tensor/pkg/io"
	"github.com/akshay120860/tensor2tensor/pkg/utils/retry"
)

// ErrTransient marks download failures which may succeed when tried
// again: server-side errors and transport failures. Client errors
// (4xx) are not transient.
var ErrTransient = errors.New("transient download failure")

type config struct {
	checksum    string
	progressOut io.Writer
	backoff     retry.Backoff
	client      *http.Client
}

type Option func(*config) *config

// WithChecksum verifies the downloaded bytes against an MD5 checksum
// in hex. Verification failure is fatal, not retried.
func WithChecksum(md5hex string) Option {
	return func(c *config) *config {
		c.checksum = md5hex
		return c
	}
}

// WithProgressOut draws a progress bar on out while downloading, when
// the server tells the content length.
func WithProgressOut(out io.Writer) Option {
	return func(c *config) *config {
		c.progressOut = out
		return c
	}
}

// WithBackoff retries transient failures, waiting by b between
// attempts. Without this option a failure is returned at once.
func WithBackoff(b retry.Backoff) Option {
	return func(c *config) *config {
		c.backoff = b
		return c
	}
}

// WithClient sends requests with c instead of http.DefaultClient.
func WithClient(cl *http.Client) Option {
	return func(c *config) *config {
		c.client = cl
		return c
	}
}

// MaybeDownload fetches url into dir/filename unless that file already
// exists, and returns the file's path.
//
// The body is written into a uniquely named ".part" file and renamed
// into place once it arrived completely, so an interrupted download
// never leaves a half-written target for later runs to trust.
func MaybeDownload(ctx context.Context, l *log.Logger, dir string, filename string, url string, opts ...Option) (string, error) {
	conf := &config{client: http.DefaultClient}
	for _, opt := range opts {
		conf = opt(conf)
	}

	target := filepath.Join(dir, filename)
	if _, err := os.Stat(target); err == nil {
		l.Printf("found %s. reusing it (not downloaded)", target)
		return target, nil
	} else if !os.IsNotExist(err) {
		return "", err
	}

	part := target + "." + uuid.NewString() + ".part"

	l.Printf("downloading %s from %s", target, url)
	var size int64
	var err error
	if conf.backoff == nil {
		size, err = fetchOnce(ctx, conf, url, part)
	} else {
		size, err = retry.Blocking(ctx, conf.backoff, func() (int64, error) {
			size, err := fetchOnce(ctx, conf, url, part)
			if errors.Is(err, ErrTransient) {
				l.Printf("download of %s failed: %s. retrying", url, err)
				err = fmt.Errorf("%w: %s", retry.ErrRetry, err)
			}
			return size, err
		})
	}
	if err != nil {
		os.Remove(part)
		return "", err
	}

	if err := os.Rename(part, target); err != nil {
		os.Remove(part)
		return "", err
	}
	l.Printf("downloaded %s (%d bytes)", target, size)
	return target, nil
}

// fetchOnce downloads url into the file at part, overwriting it.
func fetchOnce(ctx context.Context, conf *config, url string, part string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	resp, err := conf.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: GET %s: %s", ErrTransient, url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// pass
	case http.StatusInternalServerError <= resp.StatusCode:
		return 0, fmt.Errorf("%w: GET %s: %s", ErrTransient, url, resp.Status)
	default:
		return 0, fmt.Errorf("GET %s: %s", url, resp.Status)
	}

	var source io.Reader = resp.Body
	var bar *pb.ProgressBar
	if conf.progressOut != nil && 0 < resp.ContentLength {
		bar = pb.New64(resp.ContentLength)
		bar.Set(pb.Bytes, true)
		bar.SetWriter(conf.progressOut)
		if err := bar.Err(); err != nil {
			return 0, err
		}
		bar.Start()
		defer bar.Finish()
		source = bar.NewProxyReader(resp.Body)
	}
	sum := kio.NewMD5Reader(source)

	f, err := kio.CreateAll(part, 0644, 0755)
	if err != nil {
		return 0, err
	}
	size, err := io.Copy(f, sum)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return 0, fmt.Errorf("%w: GET %s: %s", ErrTransient, url, err)
	}

	if conf.checksum != "" {
		actual := hex.EncodeToString(sum.Sum())
		if actual != conf.checksum {
			return 0, fmt.Errorf(
				"%s from %s is broken: checksum unmatch: (actual, expected) = (%s, %s)",
				part, url, actual, conf.checksum,
			)
		}
	}
	return size, nil
}

// Gunzip unpacks the gzip file at src into dest, unless dest already
// exists. Like MaybeDownload it goes through a ".part" file, so dest
// appears only complete.
func Gunzip(l *log.Logger, src string, dest string) error {
	if _, err := os.Stat(dest); err == nil {
		l.Printf("found %s. reusing it", dest)
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}

	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()
	gz, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("%s is not a gzip file: %w", src, err)
	}
	defer gz.Close()

	part := dest + "." + uuid.NewString() + ".part"
	out, err := kio.CreateAll(part, 0644, 0755)
	if err != nil {
		return err
	}
	_, err = io.Copy(out, gz)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(part)
		return fmt.Errorf("unpacking %s: %w", src, err)
	}

	if err := os.Rename(part, dest); err != nil {
		os.Remove(part)
		return err
	}
	l.Printf("unpacked %s into %s", src, dest)
	return nil
}

// Package git fetches homework submissions from git repositories.
package git

import (
	"context"
	"os"

	"hwgrade/service/etc"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Auth returns the http authentication of the configuration, nil if there is none.
func Auth(c *etc.Configuration) transport.AuthMethod {
	if c.Git.Username == "" && c.Git.Password == "" {
		return nil
	}
	return &http.BasicAuth{Username: c.Git.Username, Password: c.Git.Password}
}

// Clone clones the repository at url into dir and checks out the branch ref,
// or the default branch if ref is empty. It returns the checked out commit.
func Clone(ctx context.Context, url, ref, dir string, auth transport.AuthMethod) (string, error) {
	opts := &gogit.CloneOptions{
		URL:  url,
		Auth: auth,
	}
	if ref != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(ref)
		opts.SingleBranch = true
	}
	if log.IsLevelEnabled(log.DebugLevel) {
		w := log.StandardLogger().WriterLevel(log.DebugLevel)
		defer w.Close()
		opts.Progress = w
	}

	repo, err := gogit.PlainCloneContext(ctx, dir, false, opts)
	if err != nil {
		return "", errors.Wrapf(err, "clone %s", url)
	}
	head, err := repo.Head()
	if err != nil {
		return "", errors.Wrap(err, "resolve HEAD")
	}
	log.WithFields(log.Fields{
		"url":    url,
		"commit": head.Hash().String(),
	}).Info("Cloned submission")
	return head.Hash().String(), nil
}

// CloneTemp clones the repository into a new temporary directory.
// The returned cleanup removes the directory.
func CloneTemp(ctx context.Context, url, ref string, auth transport.AuthMethod) (string, func(), error) {
	dir, err := os.MkdirTemp("", "hwgrade-")
	if err != nil {
		return "", nil, errors.Wrap(err, "create clone directory")
	}
	cleanup := func() {
		if err := os.RemoveAll(dir); err != nil {
			log.WithError(err).WithField("dir", dir).Warn("Failed to remove clone")
		}
	}
	if _, err := Clone(ctx, url, ref, dir, auth); err != nil {
		cleanup()
		return "", nil, err
	}
	return dir, cleanup, nil
}

package services

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/thomas-vilte/gitai/internal/ai"
	domainErrors "github.com/thomas-vilte/gitai/internal/errors"
	"github.com/thomas-vilte/gitai/internal/i18n"
	"github.com/thomas-vilte/gitai/internal/logger"
	"github.com/thomas-vilte/gitai/internal/ports"
	"github.com/thomas-vilte/gitai/internal/ui"
)

type CommitOptions struct {
	GenerationOptions
	NameOnly    bool
	ExitOnEmpty bool
}

// CommitService drafts a commit message from the current changes and then
// keeps refining it with whatever the user types.
type CommitService struct {
	git      ports.DiffSource
	backends BackendFactory
	creds    ports.CredentialStore
	trans    *i18n.Translations
	in       *bufio.Reader
	out      io.Writer
}

func NewCommitService(git ports.DiffSource, backends BackendFactory, creds ports.CredentialStore, trans *i18n.Translations, in io.Reader, out io.Writer) *CommitService {
	return &CommitService{
		git:      git,
		backends: backends,
		creds:    creds,
		trans:    trans,
		in:       bufio.NewReader(in),
		out:      out,
	}
}

// Run returns ErrNothingToCommit without contacting the backend when neither
// the working tree nor the index has changes. Otherwise it loops until the
// input ends, or until an empty line when ExitOnEmpty is set. Each edit is
// sent exactly as read, trailing newline included.
func (s *CommitService) Run(ctx context.Context, opts CommitOptions) error {
	log := logger.FromContext(ctx)

	diff, err := s.collectDiff(ctx, opts.NameOnly)
	if err != nil {
		return err
	}
	if strings.TrimSpace(diff) == "" {
		log.Info("no changes found in working tree or index")
		return domainErrors.ErrNothingToCommit
	}

	prompt, err := ai.BuildCommitPrompt(opts.Context, diff)
	if err != nil {
		return domainErrors.NewAppError(domainErrors.TypeInternal, "error building commit prompt", err)
	}

	sess, err := openSession(ctx, s.backends, s.creds, opts.GenerationOptions, s.out, s.trans)
	if err != nil {
		return err
	}
	defer sess.close(ctx)

	ui.PrintInfo(s.out, s.trans.GetMessage("commit.generating", 0, struct {
		Provider string
		Model    string
	}{sess.backend.Name(), sess.backend.Model()}))

	if _, err := sess.turn(ctx, prompt); err != nil {
		return err
	}

	for {
		_, _ = fmt.Fprint(s.out, s.trans.GetMessage("commit.edit_prompt", 0, nil))

		line, err := s.in.ReadString('\n')
		atEOF := errors.Is(err, io.EOF)
		if err != nil && !atEOF {
			return domainErrors.NewAppError(domainErrors.TypeInternal, "error reading input", err)
		}

		text := strings.TrimRight(line, "\r\n")
		if atEOF && text == "" {
			log.Debug("input closed, leaving edit loop")
			_, _ = fmt.Fprintln(s.out)
			return nil
		}
		if opts.ExitOnEmpty && strings.TrimSpace(text) == "" {
			ui.PrintSuccess(s.out, s.trans.GetMessage("commit.done", 0, nil))
			return nil
		}

		_, _ = fmt.Fprintln(s.out, s.trans.GetMessage("commit.you_entered", 0, struct{ Text string }{text}))

		if _, err := sess.turn(ctx, line); err != nil {
			return err
		}
		if atEOF {
			return nil
		}
	}
}

// collectDiff prefers the working tree diff and falls back to the staged one.
func (s *CommitService) collectDiff(ctx context.Context, nameOnly bool) (string, error) {
	diff, err := s.git.Diff(ctx, false, nameOnly)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(diff) != "" {
		return diff, nil
	}

	logger.Debug(ctx, "working tree is clean, using staged changes")
	return s.git.Diff(ctx, true, nameOnly)
}

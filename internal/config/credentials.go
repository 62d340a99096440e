package config

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	domainErrors "github.com/thomas-vilte/gitai/internal/errors"
	"github.com/thomas-vilte/gitai/internal/i18n"
	"github.com/thomas-vilte/gitai/internal/logger"
	"gopkg.in/ini.v1"
)

// CredentialProvider resolves secrets from the credential file at a fixed path,
// asking the user for any that are missing and persisting the answer.
type CredentialProvider struct {
	path  string
	in    *bufio.Reader
	out   io.Writer
	trans *i18n.Translations
}

func NewCredentialProvider(path string, in io.Reader, out io.Writer, trans *i18n.Translations) *CredentialProvider {
	return &CredentialProvider{
		path:  path,
		in:    bufio.NewReader(in),
		out:   out,
		trans: trans,
	}
}

// Path returns the credential file location.
func (p *CredentialProvider) Path() string {
	return p.path
}

// Get returns the value of key. The file is read on every call; when it is
// missing, unreadable or lacks the key, the user is prompted and the file is
// rewritten before reading it again.
func (p *CredentialProvider) Get(ctx context.Context, key string) (string, error) {
	if value, ok := p.lookup(ctx, key); ok {
		return value, nil
	}

	logger.Info(ctx, "credential not found, prompting", "key", key, "path", p.path)

	if err := p.Prompt(ctx, key); err != nil {
		return "", err
	}

	value, ok := p.lookup(ctx, key)
	if !ok {
		return "", domainErrors.ErrCredentialMissing.WithContext("key", key)
	}
	return value, nil
}

// Prompt asks the user for key and stores it, keeping the other keys of the
// file untouched.
func (p *CredentialProvider) Prompt(ctx context.Context, key string) error {
	_, _ = fmt.Fprint(p.out, p.trans.GetMessage("init.enter_key", 0, struct{ Key string }{key}))

	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return domainErrors.ErrCredentialMissing.WithError(err).WithContext("key", key)
	}

	value := strings.TrimSpace(line)
	if value == "" {
		return domainErrors.ErrCredentialMissing.WithContext("key", key)
	}

	if err := p.Set(key, value); err != nil {
		return err
	}

	logger.Debug(ctx, "credential stored", "key", key, "path", p.path)
	_, _ = fmt.Fprintln(p.out, p.trans.GetMessage("init.file_updated", 0, struct{ Path string }{p.path}))
	return nil
}

// Set stores value under key.
func (p *CredentialProvider) Set(key, value string) error {
	file, err := loadOrEmpty(p.path)
	if err != nil {
		// an unreadable file is replaced, the same as a missing one
		file = ini.Empty()
	}
	file.Section(ini.DefaultSection).Key(key).SetValue(value)
	return saveFile(file, p.path)
}

func (p *CredentialProvider) lookup(ctx context.Context, key string) (string, bool) {
	file, err := ini.Load(p.path)
	if err != nil {
		logger.Debug(ctx, "credential file not readable", "path", p.path, "error", err)
		return "", false
	}

	section := file.Section(ini.DefaultSection)
	if !section.HasKey(key) {
		return "", false
	}

	value := strings.TrimSpace(section.Key(key).String())
	return value, value != ""
}

package contract

import (
	"context"

	"github.com/huangsam/coauthor/schema"
	"github.com/stretchr/testify/mock"
)

// MockGitClient is a mock implementation of GitClient for testing.
type MockGitClient struct {
	mock.Mock
}

var _ GitClient = &MockGitClient{} // Compile-time check

// RepoRoot implements the GitClient interface.
func (m *MockGitClient) RepoRoot(ctx context.Context, contextPath string) (string, error) {
	ret := m.Called(ctx, contextPath)
	root, _ := ret.Get(0).(string)
	return root, ret.Error(1)
}

// HeadCommit implements the GitClient interface.
func (m *MockGitClient) HeadCommit(ctx context.Context, repoPath string) (schema.Commit, error) {
	ret := m.Called(ctx, repoPath)
	commit, _ := ret.Get(0).(schema.Commit)
	return commit, ret.Error(1)
}

// WalkHistory implements the GitClient interface. The commits to visit are
// programmed as the first return value.
func (m *MockGitClient) WalkHistory(ctx context.Context, repoPath string, fn func(schema.Commit) (bool, error)) error {
	ret := m.Called(ctx, repoPath)
	commits, _ := ret.Get(0).([]schema.Commit)
	for _, c := range commits {
		more, err := fn(c)
		if err != nil {
			return err
		}
		if !more {
			break
		}
	}
	return ret.Error(1)
}

// AmendHead implements the GitClient interface.
func (m *MockGitClient) AmendHead(ctx context.Context, repoPath string, head schema.Commit, message string) (string, error) {
	ret := m.Called(ctx, repoPath, head, message)
	hash, _ := ret.Get(0).(string)
	return hash, ret.Error(1)
}

// ConfigEntries implements the GitClient interface.
func (m *MockGitClient) ConfigEntries(ctx context.Context, repoPath string, section string) (map[string]string, error) {
	ret := m.Called(ctx, repoPath, section)
	entries, _ := ret.Get(0).(map[string]string)
	return entries, ret.Error(1)
}

// SetGlobalConfig implements the GitClient interface.
func (m *MockGitClient) SetGlobalConfig(ctx context.Context, key, value string) error {
	ret := m.Called(ctx, key, value)
	return ret.Error(0)
}

// MockAliasSource is a mock implementation of AliasSource for testing.
type MockAliasSource struct {
	mock.Mock
}

var _ AliasSource = &MockAliasSource{} // Compile-time check

// Scope implements the AliasSource interface.
func (m *MockAliasSource) Scope() schema.AliasScope {
	ret := m.Called()
	scope, _ := ret.Get(0).(schema.AliasScope)
	return scope
}

// Entries implements the AliasSource interface.
func (m *MockAliasSource) Entries(ctx context.Context) (map[string]string, error) {
	ret := m.Called(ctx)
	entries, _ := ret.Get(0).(map[string]string)
	return entries, ret.Error(1)
}

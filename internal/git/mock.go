package git

// Compile-time check that MockRepository implements Repository.
var _ Repository = (*MockRepository)(nil)

// MockRepository is a configurable mock implementation of Repository for testing.
// Each method is backed by a function field. If the function field is nil,
// the method returns sensible zero values.
type MockRepository struct {
	HeadFunc                       func() (Branch, error)
	BranchesFunc                   func() ([]Branch, error)
	TagsFunc                       func() ([]Tag, error)
	CommitFromShaFunc              func(string) (Commit, error)
	CommitLogFunc                  func(string, string) ([]Commit, error)
	PeelTagToCommitFunc            func(Tag) (string, error)
	NumberOfUncommittedChangesFunc func() (int, error)
}

func (m *MockRepository) Head() (Branch, error) {
	if m.HeadFunc != nil {
		return m.HeadFunc()
	}
	return Branch{}, nil
}

func (m *MockRepository) Branches() ([]Branch, error) {
	if m.BranchesFunc != nil {
		return m.BranchesFunc()
	}
	return nil, nil
}

func (m *MockRepository) Tags() ([]Tag, error) {
	if m.TagsFunc != nil {
		return m.TagsFunc()
	}
	return nil, nil
}

func (m *MockRepository) CommitFromSha(sha string) (Commit, error) {
	if m.CommitFromShaFunc != nil {
		return m.CommitFromShaFunc(sha)
	}
	return Commit{}, nil
}

func (m *MockRepository) CommitLog(from, to string) ([]Commit, error) {
	if m.CommitLogFunc != nil {
		return m.CommitLogFunc(from, to)
	}
	return nil, nil
}

func (m *MockRepository) PeelTagToCommit(tag Tag) (string, error) {
	if m.PeelTagToCommitFunc != nil {
		return m.PeelTagToCommitFunc(tag)
	}
	return tag.TargetSha, nil
}

func (m *MockRepository) NumberOfUncommittedChanges() (int, error) {
	if m.NumberOfUncommittedChangesFunc != nil {
		return m.NumberOfUncommittedChangesFunc()
	}
	return 0, nil
}

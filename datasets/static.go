package datasets

// Static is an in-memory source.
type Static struct {
	Training []Item
	Test     []Item
	Classes  int
}

func (s *Static) ReadTrainingData() ([]Item, error) {
	return s.Training, nil
}

func (s *Static) ReadTestData() ([]Item, error) {
	return s.Test, nil
}

func (s *Static) LabelCount() int {
	return s.Classes
}

func (s *Static) EncodeLabel(i int) string {
	return EncodeLabel(i, s.Classes)
}

package domain

type Metadata struct {
	CurrentPage  int
	PageSize     int
	TotalPages   int
	TotalRecords int
}

func NewMetadata(totalRecords, page, pageSize int) *Metadata {
	return &Metadata{
		CurrentPage:  page,
		PageSize:     pageSize,
		TotalPages:   (totalRecords + pageSize - 1) / pageSize,
		TotalRecords: totalRecords,
	}
}

func (m Metadata) HasPrev() bool {
	return m.CurrentPage > 1
}

func (m Metadata) HasNext() bool {
	return m.CurrentPage < m.TotalPages
}

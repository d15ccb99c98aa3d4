package sync

// PlanPages computes which pages are left to fetch after the first one.
// The upstream reports the total number of matching records in every
// page response, and the page size is whatever the first page happened
// to contain, so the remaining page numbers follow from those two alone.
// A zero page size means the result set is empty and no pages remain,
// whatever the reported count says.
func PlanPages(totalCount, firstPageSize int) []int {
	if firstPageSize == 0 {
		return nil
	}

	numPages := (totalCount + firstPageSize - 1) / firstPageSize
	if numPages <= 1 {
		return nil
	}

	pages := make([]int, 0, numPages-1)
	for page := 2; page <= numPages; page++ {
		pages = append(pages, page)
	}

	return pages
}

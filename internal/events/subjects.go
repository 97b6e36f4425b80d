package events

const (
	StreamName   = "FOLIO_EVENTS"
	StreamMaxAge = "720h" // 30 days
)

func SubjectRatingCreated(bookID string) string { return "folio.rating." + bookID + ".created" }
func SubjectRatingUpdated(bookID string) string { return "folio.rating." + bookID + ".updated" }
func SubjectRatingDeleted(bookID string) string { return "folio.rating." + bookID + ".deleted" }

func SubjectProfileUpdated(readerID string) string { return "folio.profile." + readerID + ".updated" }

func SubjectCompatChecked(authorID string) string { return "folio.compat." + authorID + ".checked" }

func SubjectShelfItemAdded(shelfID string) string   { return "folio.shelf." + shelfID + ".item.added" }
func SubjectShelfItemRemoved(shelfID string) string { return "folio.shelf." + shelfID + ".item.removed" }

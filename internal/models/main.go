// Package models defines the core data structures for catalog items and accounts.
package models

// Item represents one catalog entry (a book-like record) owned by a user.
// All fields besides ID are free text and may be empty.
type Item struct {
	// ID is the unique identifier of the item within its owner's collection.
	ID string `json:"id"`
	// Name is the title of the item.
	Name string `json:"name"`
	// Details holds a free-form description.
	Details string `json:"details"`
	// Category is the user-chosen category label.
	Category string `json:"category"`
	// Author is the author of the item.
	Author string `json:"author"`
	// PublicationDate is the publication date as entered by the user.
	PublicationDate string `json:"publicationDate"`
	// ImageURL is a URL or local URI of the cover image.
	ImageURL string `json:"imageUrl"`
	// Penerbit is the publisher name.
	Penerbit string `json:"penerbit"`
	// Format is the physical or digital format of the item.
	Format string `json:"format"`
	// Rating is the user-assigned rating, kept as entered.
	Rating string `json:"rating"`
}

// ItemPatch carries field changes for create and update operations.
// A nil field means "leave unchanged"; a pointer to the empty string
// explicitly clears the field.
type ItemPatch struct {
	Name            *string
	Details         *string
	Category        *string
	Author          *string
	PublicationDate *string
	ImageURL        *string
	Penerbit        *string
	Format          *string
	Rating          *string
}

// Apply merges the set fields of the patch into the item.
func (p ItemPatch) Apply(it *Item) {
	if p.Name != nil {
		it.Name = *p.Name
	}
	if p.Details != nil {
		it.Details = *p.Details
	}
	if p.Category != nil {
		it.Category = *p.Category
	}
	if p.Author != nil {
		it.Author = *p.Author
	}
	if p.PublicationDate != nil {
		it.PublicationDate = *p.PublicationDate
	}
	if p.ImageURL != nil {
		it.ImageURL = *p.ImageURL
	}
	if p.Penerbit != nil {
		it.Penerbit = *p.Penerbit
	}
	if p.Format != nil {
		it.Format = *p.Format
	}
	if p.Rating != nil {
		it.Rating = *p.Rating
	}
}

// Account represents a registered user credential record.
type Account struct {
	// Username is the login name chosen by the user.
	Username string `json:"username"`
	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash []byte `json:"passwordHash"`
}

package preferences

// Preference es 1:1 con Pet (pet_id único).
type Preference struct {
	ID        string
	PetID     string
	Likes     *string
	Dislikes  *string
	FoodNotes *string
}

package players

import "github.com/tarota5/scores/internal/tarot"

// seed is written on first use, when no player list exists yet.
var seed = []tarot.Player{
	{ID: "0a1b2c3d-4e5f-4a6b-8c7d-90ab12cd34ef", Name: "Yannick"},
	{ID: "cc6f04e7-c611-4b25-9e3f-2a1b3c4d5e6f", Name: "Christine"},
	{ID: "f47ac10b-58cc-4f15-8a2b-7d6c5b4a3920", Name: "Aurélie"},
	{ID: "a3d9b2e1-77c4-4d99-8f12-0c1d2e3f4a5b", Name: "Alexis"},
	{ID: "9b8a7c6d-1234-4f00-9abc-deadbeef00ff", Name: "Camille"},
	{ID: "1f2e3d4c-5b6a-4c3b-8d7e-6f5a4b3c2d1e", Name: "Laïla"},
	{ID: "e2d3c4b5-a6f7-4b8c-9d0e-112233445566", Name: "Christophe"},
	{ID: "3c2b1a0f-9e8d-4821-8abc-ffeeccddee11", Name: "Florence"},
	{ID: "7a6b5c4d-3e2f-4a1b-9f8e-0a1b2c3d4e5f", Name: "Clémence"},
	{ID: "b1c2d3e4-f5a6-4f7e-8d9c-abcdef012345", Name: "Arthur"},
	{ID: "d4c3b2a1-0f1e-4d2c-8b7a-1234abcd5678", Name: "Eloïse"},
	{ID: "5f6e7d8c-9a0b-4c1d-9b8a-fedcba987654", Name: "Martin"},
	{ID: "c1d2e3f4-5678-4031-8c9d-0f1e2d3c4b5a", Name: "Valérie"},
	{ID: "8f7e6d5c-4b3a-4a9b-9c8d-7e6f5a4b3c2d", Name: "Benjamin"},
	{ID: "2b3c4d5e-6f70-4f81-8a9b-0c0d0e0f1a2b", Name: "Armand"},
	{ID: "6a5b4c3d-2e1f-47b2-9a8b-334455667788", Name: "Alexis G"},
}

// Seed returns a copy of the initial player list.
func Seed() []tarot.Player {
	return append([]tarot.Player(nil), seed...)
}

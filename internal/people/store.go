package people

import (
	"fmt"
	"net/mail"
	"os"
	"strings"
	"sync"
)

// DefaultStorePath is the contact file used when none is configured
const DefaultStorePath = "peoples.txt"

// Person is one entry in the local contact file
type Person struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone_number,omitempty"`
}

// Store is an append-only contact list backed by a plain text file.
// Each line holds one contact as name,email,phone.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a store backed by the given file path
func NewStore(path string) *Store {
	if path == "" {
		path = DefaultStorePath
	}
	return &Store{path: path}
}

// List returns all contacts in the file. A missing file means no contacts
// have been added yet and returns an empty list.
func (s *Store) List() ([]Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read contact file %s: %w", s.path, err)
	}

	var persons []Person
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := strings.SplitN(line, ",", 3)
		p := Person{Name: strings.TrimSpace(fields[0])}
		if len(fields) > 1 {
			p.Email = strings.TrimSpace(fields[1])
		}
		if len(fields) > 2 {
			p.Phone = strings.TrimSpace(fields[2])
		}
		persons = append(persons, p)
	}

	return persons, nil
}

// Add validates and appends a contact to the file. A missing phone number
// is stored as "-".
func (s *Store) Add(name, email, phone string) (*Person, error) {
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("invalid email address %q: %w", email, err)
	}
	if strings.ContainsAny(name, ",\n") || strings.ContainsAny(phone, ",\n") {
		return nil, fmt.Errorf("name and phone must not contain commas or newlines")
	}
	if phone == "" {
		phone = "-"
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open contact file %s: %w", s.path, err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%s,%s,%s\n", name, email, phone); err != nil {
		return nil, fmt.Errorf("failed to append contact: %w", err)
	}

	return &Person{Name: name, Email: email, Phone: phone}, nil
}

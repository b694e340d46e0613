// Package console implements the interactive phonebook menu. It reads one
// answer per line, checks fields with package validate and dispatches to a
// types.ContactStore.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/phonebook/internal/validate"
	"github.com/mesh-intelligence/phonebook/pkg/types"
)

const banner = "Welcome to ROLA Phonebook Storage Center"

// Main menu choices.
const (
	choiceAdd    = "1"
	choiceList   = "2"
	choiceSearch = "3"
	choiceView   = "4"
	choiceUpdate = "5"
	choiceDelete = "6"
	choiceQuit   = "7"
)

var menu = []string{
	"1. Add Contact",
	"2. View All Contacts",
	"3. Search Contacts",
	"4. View A Contact",
	"5. Update Contact",
	"6. Delete Contact",
	"7. Quit",
}

// Console is the menu loop. It is not safe for concurrent use.
type Console struct {
	store  types.ContactStore
	in     *bufio.Reader
	out    io.Writer
	log    *zap.Logger
	styles styles
	color  bool
	closer func() error
	eof    bool
	inErr  error
}

// Option configures a Console.
type Option func(*Console)

// WithLogger sets the logger. Each Console tags its entries with a session ID.
func WithLogger(l *zap.Logger) Option {
	return func(c *Console) { c.log = l }
}

// WithCloser sets the function run once when the user confirms quit or input
// ends. It is where the store connection is released.
func WithCloser(fn func() error) Option {
	return func(c *Console) { c.closer = fn }
}

// WithColor enables lipgloss styling of messages and tables.
func WithColor(enabled bool) Option {
	return func(c *Console) { c.color = enabled }
}

// New creates a Console reading answers from in and writing to out.
func New(store types.ContactStore, in io.Reader, out io.Writer, opts ...Option) *Console {
	c := &Console{
		store: store,
		in:    bufio.NewReader(in),
		out:   out,
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.Named("console").With(zap.String("session", newSessionID()))
	c.styles = newStyles(out, c.color)
	return c
}

// newSessionID generates a UUID v7 to correlate the log entries of one run.
func newSessionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// Run shows the menu until the user confirms quit or input ends. Either way
// the closer runs before Run returns. The returned error comes from the
// closer or from reading input.
func (c *Console) Run() error {
	c.println(c.styles.render(c.styles.title, banner))
	c.log.Debug("session started")

	for {
		c.printMenu()
		choice, ok := c.prompt("Enter your choice (1-7): ")
		if !ok {
			return c.exit()
		}
		c.log.Debug("menu choice", zap.String("choice", choice))

		switch choice {
		case choiceAdd:
			c.addContact()
		case choiceList:
			c.viewContacts()
		case choiceSearch:
			c.searchContacts()
		case choiceView:
			c.viewSelectedContact()
		case choiceUpdate:
			c.updateContact()
		case choiceDelete:
			c.deleteSelectedContact()
		case choiceQuit:
			if c.confirmQuit() {
				return c.exit()
			}
		default:
			c.warn("Invalid choice. Please enter a valid option.")
		}

		if c.eof {
			return c.exit()
		}
	}
}

func (c *Console) printMenu() {
	c.println()
	c.println(c.styles.render(c.styles.title, "PHONEBOOK MENU:"))
	for _, line := range menu {
		c.println(line)
	}
}

// addContact re-prompts until all fields validate, then inserts once.
func (c *Console) addContact() {
	name, phone, email, ok := c.readFields("")
	if !ok {
		return
	}
	id, err := c.store.Insert(name, phone, email)
	if err != nil {
		c.warn(fmt.Sprintf("Error adding contact: %v", err))
		return
	}
	c.log.Info("contact added", zap.Int64("id", id))
	c.success("Contact added successfully.")
}

// readFields prompts for name, phone and email, starting over from the name
// whenever one of them is rejected. ok is false only when input ended.
func (c *Console) readFields(qualifier string) (name, phone, email string, ok bool) {
	for {
		if name, ok = c.prompt("Enter " + qualifier + "name: "); !ok {
			return
		}
		name = validate.NormalizeName(name)
		if !validate.Name(name) {
			c.warn("Name cannot be blank")
			continue
		}
		if utf8.RuneCountInString(name) > types.MaxNameLen {
			c.warn(fmt.Sprintf("Name must be at most %d characters.", types.MaxNameLen))
			continue
		}

		if phone, ok = c.prompt("Enter " + qualifier + "phone number: "); !ok {
			return
		}
		if !validate.Phone(phone) {
			c.warn("Invalid phone number format. Please enter a valid phone number.")
			continue
		}
		if len(phone) > types.MaxPhoneLen {
			c.warn(fmt.Sprintf("Phone number must be at most %d characters.", types.MaxPhoneLen))
			continue
		}

		if email, ok = c.prompt("Enter " + qualifier + "email: "); !ok {
			return
		}
		if !validate.Email(email) {
			c.warn("Invalid email format. Please enter a valid email.")
			continue
		}
		if len(email) > types.MaxEmailLen {
			c.warn(fmt.Sprintf("Email must be at most %d characters.", types.MaxEmailLen))
			continue
		}
		return name, phone, email, true
	}
}

func (c *Console) viewContacts() {
	contacts, err := c.store.List()
	if err != nil {
		c.warn(fmt.Sprintf("Error fetching contacts: %v", err))
		return
	}
	if len(contacts) == 0 {
		c.println("No contacts found.")
		return
	}
	c.println(c.styles.contactTable(contacts))
}

// viewContact prints one contact's details.
func (c *Console) viewContact(id int64) {
	contact, err := c.store.Get(id)
	switch {
	case errors.Is(err, types.ErrNotFound):
		c.warn("Contact not found.")
	case err != nil:
		c.warn(fmt.Sprintf("Error fetching contact: %v", err))
	default:
		c.log.Debug("contact viewed", zap.Stringer("contact", contact))
		c.println(c.styles.contactTable([]*types.Contact{contact}))
	}
}

// deleteContact deletes id and reports whether the row is gone, including
// when it had already been removed.
func (c *Console) deleteContact(id int64) bool {
	err := c.store.Delete(id)
	switch {
	case errors.Is(err, types.ErrNotFound):
		c.warn("Contact not found.")
		return true
	case err != nil:
		c.warn(fmt.Sprintf("Error deleting contact: %v", err))
		return false
	}
	c.log.Info("contact deleted", zap.Int64("id", id))
	c.success("Contact deleted successfully.")
	return true
}

func (c *Console) updateContact() {
	answer, ok := c.prompt("Enter ID of contact to update: ")
	if !ok {
		return
	}
	id, err := strconv.ParseInt(answer, 10, 64)
	if err != nil || id <= 0 || !isDigits(answer) {
		c.warn(msgInvalidInput)
		return
	}

	name, phone, email, ok := c.readFields("new ")
	if !ok {
		return
	}

	err = c.store.Update(id, name, phone, email)
	switch {
	case errors.Is(err, types.ErrNotFound):
		c.warn("Contact not found.")
	case err != nil:
		c.warn(fmt.Sprintf("Error updating contact: %v", err))
	default:
		c.log.Info("contact updated", zap.Int64("id", id))
		c.success("Contact updated successfully.")
	}
}

func (c *Console) searchContacts() {
	matches, ok := c.searchPrompt("Enter name to search for: ")
	if !ok {
		return
	}
	c.runFlow(newSearchFlow(matches))
}

func (c *Console) viewSelectedContact() {
	matches, ok := c.searchPrompt("Enter name you want to view details of: ")
	if !ok {
		return
	}
	c.runFlow(newPickFlow(matches, actionView))
}

func (c *Console) deleteSelectedContact() {
	matches, ok := c.searchPrompt("Enter name you want to delete from contact: ")
	if !ok {
		return
	}
	c.runFlow(newPickFlow(matches, actionDelete))
}

// searchPrompt asks for a search term and runs the search. ok is false when
// input ended, the search failed or nothing matched; the reason has been
// printed.
func (c *Console) searchPrompt(question string) ([]types.Match, bool) {
	term, ok := c.prompt(question)
	if !ok {
		return nil, false
	}
	matches, err := c.store.Search(term)
	if err != nil {
		c.warn(fmt.Sprintf("Error searching contacts: %v", err))
		return nil, false
	}
	if len(matches) == 0 {
		c.println("No matching contacts found.")
		return nil, false
	}
	return matches, true
}

// runFlow drives a searchFlow until it is done or input ends.
func (c *Console) runFlow(f *searchFlow) {
	first := true
	for !f.done() {
		if f.state == stateListing {
			c.printMatches(f.matches, first)
			first = false
			f.listed()
			continue
		}

		input, ok := c.prompt(f.prompt())
		if !ok {
			return
		}
		from := f.state
		st := f.handle(input)
		c.log.Debug("search transition",
			zap.Stringer("from", from),
			zap.Stringer("to", f.state),
			zap.String("input", input))
		if st.message != "" {
			c.warn(st.message)
		}

		switch st.action {
		case actionDelete:
			if c.deleteContact(st.id) {
				f.remove(st.id)
			}
		case actionView:
			c.viewContact(st.id)
		}
	}
}

func (c *Console) printMatches(matches []types.Match, first bool) {
	if len(matches) == 0 {
		c.println("No matching contacts left.")
		return
	}
	if first {
		c.println("Matching contacts:")
	} else {
		c.println("Remaining matches:")
	}
	for _, m := range matches {
		c.println(fmt.Sprintf("%d. %s", m.ID, m.Name))
	}
}

// confirmQuit asks for confirmation; a blank answer confirms.
func (c *Console) confirmQuit() bool {
	answer, ok := c.prompt("Are you sure you want to exit? 1) Yes (OR BLANK TO EXIT) OR 2) No: ")
	if !ok {
		return true
	}
	return answer == "" || answer == "1"
}

// exit runs the closer once and prints the farewell.
func (c *Console) exit() error {
	var err error
	if c.closer != nil {
		closer := c.closer
		c.closer = nil
		if err = closer(); err != nil {
			c.warn(fmt.Sprintf("Error closing connection: %v", err))
		} else {
			c.println("Connection closed.")
		}
	}
	c.println("Exiting the phonebook app...")
	c.log.Debug("session ended")

	if err == nil {
		err = c.inErr
	}
	return err
}

// prompt writes question and reads one trimmed line of any length. ok is
// false once input has ended. A final line without a newline is still
// returned.
func (c *Console) prompt(question string) (string, bool) {
	if c.eof {
		return "", false
	}
	fmt.Fprint(c.out, question)

	line, err := c.in.ReadString('\n')
	if err != nil {
		c.eof = true
		if !errors.Is(err, io.EOF) {
			c.inErr = fmt.Errorf("reading input: %w", err)
			c.println()
			return "", false
		}
		if line == "" {
			c.println()
			return "", false
		}
	}
	return strings.TrimSpace(line), true
}

func (c *Console) println(a ...any) {
	fmt.Fprintln(c.out, a...)
}

func (c *Console) success(msg string) {
	c.println(c.styles.render(c.styles.success, msg))
}

func (c *Console) warn(msg string) {
	c.println(c.styles.render(c.styles.warn, msg))
}

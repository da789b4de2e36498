package domain

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// MaxNameLength bounds every Name in bytes.
	MaxNameLength = 128

	accountSeparator    = "@"
	definitionSeparator = "#"
)

// Name identifies domains and is the local part of account and asset
// definition identifiers.
type Name string

// ParseName validates s as a Name.
func ParseName(s string) (Name, error) {
	switch {
	case s == "":
		return "", NewValidationError("name", "cannot be empty")
	case len(s) > MaxNameLength:
		return "", NewValidationError("name", fmt.Sprintf("longer than %d bytes", MaxNameLength))
	case !utf8.ValidString(s):
		return "", NewValidationError("name", fmt.Sprintf("%q is not valid UTF-8", s))
	case strings.ContainsAny(s, accountSeparator+definitionSeparator):
		return "", NewValidationError("name", fmt.Sprintf("%q contains a reserved character (@ or #)", s))
	case strings.IndexFunc(s, unicode.IsSpace) >= 0:
		return "", NewValidationError("name", fmt.Sprintf("%q contains whitespace", s))
	}
	return Name(s), nil
}

// String returns the string form of the name.
func (n Name) String() string { return string(n) }

// AccountID identifies an account as name@domain.
type AccountID struct {
	Name   Name
	Domain Name
}

// ParseAccountID parses the name@domain form.
func ParseAccountID(s string) (AccountID, error) {
	name, dom, ok := strings.Cut(s, accountSeparator)
	if !ok {
		return AccountID{}, NewValidationError("account_id", fmt.Sprintf("%q is not of the form name@domain", s))
	}
	n, err := ParseName(name)
	if err != nil {
		return AccountID{}, NewValidationError("account_id", err.Error())
	}
	d, err := ParseName(dom)
	if err != nil {
		return AccountID{}, NewValidationError("account_id", err.Error())
	}
	return AccountID{Name: n, Domain: d}, nil
}

func (id AccountID) String() string {
	return string(id.Name) + accountSeparator + string(id.Domain)
}

// MarshalText encodes the id in its string form so it can key JSON objects.
func (id AccountID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText mirrors MarshalText.
func (id *AccountID) UnmarshalText(b []byte) error {
	parsed, err := ParseAccountID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// AssetDefinitionID identifies an asset definition as name#domain.
type AssetDefinitionID struct {
	Name   Name
	Domain Name
}

// ParseAssetDefinitionID parses the name#domain form.
func ParseAssetDefinitionID(s string) (AssetDefinitionID, error) {
	name, dom, ok := strings.Cut(s, definitionSeparator)
	if !ok {
		return AssetDefinitionID{}, NewValidationError("asset_definition_id", fmt.Sprintf("%q is not of the form name#domain", s))
	}
	n, err := ParseName(name)
	if err != nil {
		return AssetDefinitionID{}, NewValidationError("asset_definition_id", err.Error())
	}
	d, err := ParseName(dom)
	if err != nil {
		return AssetDefinitionID{}, NewValidationError("asset_definition_id", err.Error())
	}
	return AssetDefinitionID{Name: n, Domain: d}, nil
}

func (id AssetDefinitionID) String() string {
	return string(id.Name) + definitionSeparator + string(id.Domain)
}

// AssetID identifies the holding of one asset definition by one account.
type AssetID struct {
	Definition AssetDefinitionID
	Account    AccountID
}

// ParseAssetID parses definition#domain#account@domain. The definition
// domain may be left empty (rose##alice@wonderland) when it equals the
// account's domain.
func ParseAssetID(s string) (AssetID, error) {
	name, rest, ok := strings.Cut(s, definitionSeparator)
	if !ok {
		return AssetID{}, NewValidationError("asset_id", fmt.Sprintf("%q is not of the form name#domain#account", s))
	}
	defDomain, account, ok := strings.Cut(rest, definitionSeparator)
	if !ok {
		return AssetID{}, NewValidationError("asset_id", fmt.Sprintf("%q is not of the form name#domain#account", s))
	}
	accID, err := ParseAccountID(account)
	if err != nil {
		return AssetID{}, NewValidationError("asset_id", err.Error())
	}
	if defDomain == "" {
		defDomain = string(accID.Domain)
	}
	def, err := ParseAssetDefinitionID(name + definitionSeparator + defDomain)
	if err != nil {
		return AssetID{}, NewValidationError("asset_id", err.Error())
	}
	return AssetID{Definition: def, Account: accID}, nil
}

// AccountID returns the owning account, which routes asset registration.
func (id AssetID) AccountID() AccountID { return id.Account }

func (id AssetID) String() string {
	return id.Definition.String() + definitionSeparator + id.Account.String()
}

// MarshalText encodes the id in its string form so it can key JSON objects.
func (id AssetID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText mirrors MarshalText.
func (id *AssetID) UnmarshalText(b []byte) error {
	parsed, err := ParseAssetID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

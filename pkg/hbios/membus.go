package hbios

import "romwbw/pkg/membank"

// peekGuest and pokeGuest implement the bank-qualified memory access rule
// shared by DIO sector transfer, SYS execute-copy, and SYS peek/poke:
// addresses at or above 0x8000 always resolve to the common bank
// regardless of the explicit-bank flag; below that, an explicit bank
// (when requested) is addressed directly via WriteBank/ReadBank, and
// otherwise the access goes through the currently selected bank (Fetch/
// Store), which also carries shadow-RAM and ident-protection semantics.
func (d *Dispatch) peekGuest(addr uint16, explicit bool, bank byte) byte {
	if addr >= membank.UpperHalf {
		return d.Mem.ReadBank(membank.CommonBank, addr-membank.UpperHalf)
	}
	if explicit {
		return d.Mem.ReadBank(bank, addr)
	}
	return d.Mem.Fetch(addr)
}

func (d *Dispatch) pokeGuest(addr uint16, explicit bool, bank byte, v byte) {
	if addr >= membank.UpperHalf {
		d.Mem.WriteBank(membank.CommonBank, addr-membank.UpperHalf, v)
		return
	}
	if explicit {
		d.Mem.WriteBank(bank, addr, v)
		return
	}
	d.Mem.Store(addr, v)
}

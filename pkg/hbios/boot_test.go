package hbios

import "testing"

func buildBootImage(load, end, entry uint16, payload []byte) []byte {
	img := make([]byte, 0x600+len(payload))
	block := img[0x5E0:0x600]
	block[26], block[27] = byte(load), byte(load>>8)
	block[28], block[29] = byte(end), byte(end>>8)
	block[30], block[31] = byte(entry), byte(entry>>8)
	copy(img[0x600:], payload)
	return img
}

func TestSysBootFromRomApp(t *testing.T) {
	d, h := newTestDispatch()
	payload := []byte{0x11, 0x22, 0x33}
	const loadAddr = 0x0100
	img := buildBootImage(loadAddr, loadAddr+uint16(len(payload)), loadAddr, payload)
	h.PutFile("app.bin", img)
	d.RegisterRomApp(RomApp{DisplayName: "App", FilePath: "app.bin", BootKey: 'Z'})

	d.Mem.SelectBank(0)
	for i, c := range []byte("Z\r") {
		d.Mem.Store(uint16(0x4000+i), c)
	}
	r := &fakeRegs{b: 0xF0, c: sysBoot}
	r.SetHL(0x4000)
	outcome := d.Handle(r)

	if outcome != OutcomeNoReturn {
		t.Fatalf("outcome = %v, want OutcomeNoReturn", outcome)
	}
	if Status(int8(r.a)) != StatusOK {
		t.Fatalf("status = %d, want StatusOK", int8(r.a))
	}
	if r.pc != loadAddr {
		t.Fatalf("PC = %#04x, want %#04x", r.pc, loadAddr)
	}
	for i, want := range payload {
		got := d.Mem.ReadBank(bootUserBank, loadAddr+uint16(i))
		if got != want {
			t.Fatalf("payload byte %d = %#02x, want %#02x", i, got, want)
		}
	}
}

func TestSysBootUnknownKeyReturnsBadUnit(t *testing.T) {
	d, _ := newTestDispatch()
	d.Mem.SelectBank(0)
	for i, c := range []byte("Q\x00") {
		d.Mem.Store(uint16(0x4000+i), c)
	}
	r := &fakeRegs{b: 0xF0, c: sysBoot}
	r.SetHL(0x4000)
	d.Handle(r)
	if Status(int8(r.a)) != StatusBadUnit {
		t.Fatalf("status = %d, want StatusBadUnit", int8(r.a))
	}
}

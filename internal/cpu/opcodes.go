package cpu

import "log/slog"

// opFn executes one base-table opcode and returns the machine cycles spent.
type opFn func(c *CPU) int

var baseOps [256]opFn

func init() {
	// 0x40-0x7F: LD r,r' grid, except 0x76 which is HALT.
	for dst := byte(0); dst < 8; dst++ {
		for src := byte(0); src < 8; src++ {
			opcode := 0x40 + dst*8 + src
			d, s := dst, src
			baseOps[opcode] = func(c *CPU) int {
				c.setReg8(d, c.reg8(s))
				if d == 6 || s == 6 {
					return 2
				}
				return 1
			}
		}
	}
	baseOps[0x76] = func(c *CPU) int {
		c.halt()
		return 1
	}

	// INC r8 / DEC r8 / LD r8,d8, one row per register at 0x04/0x05/0x06 + 8y.
	for y := byte(0); y < 8; y++ {
		reg := y
		cyclesRW := 1
		if reg == 6 {
			cyclesRW = 3
		}
		baseOps[0x04+y*8] = func(c *CPU) int {
			c.incReg8(reg)
			if reg == 6 {
				return 3
			}
			return 1
		}
		baseOps[0x05+y*8] = func(c *CPU) int {
			c.decReg8(reg)
			if reg == 6 {
				return 3
			}
			return 1
		}
		baseOps[0x06+y*8] = func(c *CPU) int {
			v := c.fetch8()
			c.setReg8(reg, v)
			return cyclesRW
		}
	}

	// 0x80-0xBF: ALU A,r8 grid.
	for op := byte(0); op < 8; op++ {
		for r := byte(0); r < 8; r++ {
			opcode := 0x80 + op*8 + r
			o, reg := op, r
			baseOps[opcode] = func(c *CPU) int {
				c.aluOp(o, c.reg8(reg))
				if reg == 6 {
					return 2
				}
				return 1
			}
		}
	}

	// ALU A,d8 immediates: 0xC6,0xCE,0xD6,0xDE,0xE6,0xEE,0xF6,0xFE.
	for op := byte(0); op < 8; op++ {
		opcode := 0xC6 + op*8
		o := op
		baseOps[opcode] = func(c *CPU) int {
			c.aluOp(o, c.fetch8())
			return 2
		}
	}

	// LD rr,d16 / INC rr / DEC rr / ADD HL,rr, group1 (BC,DE,HL,SP).
	for p := byte(0); p < 4; p++ {
		pp := p
		baseOps[0x01+pp*0x10] = func(c *CPU) int {
			c.setReg16g1(pp, c.fetch16())
			return 3
		}
		baseOps[0x03+pp*0x10] = func(c *CPU) int {
			c.setReg16g1(pp, c.reg16g1(pp)+1)
			return 2
		}
		baseOps[0x0B+pp*0x10] = func(c *CPU) int {
			c.setReg16g1(pp, c.reg16g1(pp)-1)
			return 2
		}
		baseOps[0x09+pp*0x10] = func(c *CPU) int {
			c.addHL(c.reg16g1(pp))
			return 2
		}
	}

	// PUSH/POP, group2 (BC,DE,HL,AF).
	for p := byte(0); p < 4; p++ {
		pp := p
		baseOps[0xC1+pp*0x10] = func(c *CPU) int {
			c.setReg16g2(pp, c.pop())
			return 3
		}
		baseOps[0xC5+pp*0x10] = func(c *CPU) int {
			c.push(c.reg16g2(pp))
			return 4
		}
	}

	// RET cc / JP cc,a16 / CALL cc,a16 / JR cc,r8.
	for cc := byte(0); cc < 4; cc++ {
		ccIdx := cc
		baseOps[0xC0+ccIdx*8] = func(c *CPU) int {
			if c.checkCond(ccIdx) {
				c.PC = c.pop()
				return 5
			}
			return 2
		}
		baseOps[0xC2+ccIdx*8] = func(c *CPU) int {
			target := c.fetch16()
			if c.checkCond(ccIdx) {
				c.PC = target
				return 4
			}
			return 3
		}
		baseOps[0xC4+ccIdx*8] = func(c *CPU) int {
			target := c.fetch16()
			if c.checkCond(ccIdx) {
				c.push(c.PC)
				c.PC = target
				return 6
			}
			return 3
		}
		baseOps[0x20+ccIdx*8] = func(c *CPU) int {
			offset := int8(c.fetch8())
			if c.checkCond(ccIdx) {
				c.PC = uint16(int32(c.PC) + int32(offset))
				return 3
			}
			return 2
		}
	}

	// RST n: 0xC7+8n, targets 0x00,0x08,...,0x38.
	for n := byte(0); n < 8; n++ {
		target := uint16(n) * 8
		baseOps[0xC7+n*8] = func(c *CPU) int {
			c.push(c.PC)
			c.PC = target
			return 4
		}
	}
}

func init() {
	baseOps[0x00] = func(c *CPU) int { return 1 } // NOP
	baseOps[0x10] = func(c *CPU) int {
		c.fetch8() // STOP's second byte, conventionally 0x00
		slog.Debug("STOP executed", "pc", c.PC)
		return 1
	}

	baseOps[0x02] = func(c *CPU) int { c.bus.Write(c.BC(), c.A); return 2 }
	baseOps[0x12] = func(c *CPU) int { c.bus.Write(c.DE(), c.A); return 2 }
	baseOps[0x0A] = func(c *CPU) int { c.A = c.bus.Read(c.BC()); return 2 }
	baseOps[0x1A] = func(c *CPU) int { c.A = c.bus.Read(c.DE()); return 2 }

	baseOps[0x22] = func(c *CPU) int {
		c.bus.Write(c.HL(), c.A)
		c.SetHL(c.HL() + 1)
		return 2
	}
	baseOps[0x32] = func(c *CPU) int {
		c.bus.Write(c.HL(), c.A)
		c.SetHL(c.HL() - 1)
		return 2
	}
	baseOps[0x2A] = func(c *CPU) int {
		c.A = c.bus.Read(c.HL())
		c.SetHL(c.HL() + 1)
		return 2
	}
	baseOps[0x3A] = func(c *CPU) int {
		c.A = c.bus.Read(c.HL())
		c.SetHL(c.HL() - 1)
		return 2
	}

	baseOps[0x07] = func(c *CPU) int { c.A = c.rlc(c.A); c.SetFlagZ(false); return 1 }
	baseOps[0x0F] = func(c *CPU) int { c.A = c.rrc(c.A); c.SetFlagZ(false); return 1 }
	baseOps[0x17] = func(c *CPU) int { c.A = c.rl(c.A); c.SetFlagZ(false); return 1 }
	baseOps[0x1F] = func(c *CPU) int { c.A = c.rr(c.A); c.SetFlagZ(false); return 1 }

	baseOps[0x18] = func(c *CPU) int {
		offset := int8(c.fetch8())
		c.PC = uint16(int32(c.PC) + int32(offset))
		return 3
	}

	baseOps[0x08] = func(c *CPU) int {
		addr := c.fetch16()
		c.bus.Write(addr, byte(c.SP))
		c.bus.Write(addr+1, byte(c.SP>>8))
		return 5
	}

	baseOps[0xE0] = func(c *CPU) int {
		offset := c.fetch8()
		c.bus.Write(0xFF00+uint16(offset), c.A)
		return 3
	}
	baseOps[0xF0] = func(c *CPU) int {
		offset := c.fetch8()
		c.A = c.bus.Read(0xFF00 + uint16(offset))
		return 3
	}
	baseOps[0xE2] = func(c *CPU) int { c.bus.Write(0xFF00+uint16(c.C), c.A); return 2 }
	baseOps[0xF2] = func(c *CPU) int { c.A = c.bus.Read(0xFF00 + uint16(c.C)); return 2 }
	baseOps[0xEA] = func(c *CPU) int { c.bus.Write(c.fetch16(), c.A); return 4 }
	baseOps[0xFA] = func(c *CPU) int { c.A = c.bus.Read(c.fetch16()); return 4 }

	baseOps[0xE8] = func(c *CPU) int {
		e := int8(c.fetch8())
		c.SP = c.addSPSigned(e)
		return 4
	}
	baseOps[0xF8] = func(c *CPU) int {
		e := int8(c.fetch8())
		c.SetHL(c.addSPSigned(e))
		return 3
	}
	baseOps[0xF9] = func(c *CPU) int { c.SP = c.HL(); return 2 }

	baseOps[0xC3] = func(c *CPU) int { c.PC = c.fetch16(); return 4 }
	baseOps[0xE9] = func(c *CPU) int { c.PC = c.HL(); return 1 }
	baseOps[0xCD] = func(c *CPU) int {
		target := c.fetch16()
		c.push(c.PC)
		c.PC = target
		return 6
	}
	baseOps[0xC9] = func(c *CPU) int { c.PC = c.pop(); return 4 }
	baseOps[0xD9] = func(c *CPU) int {
		c.PC = c.pop()
		c.ic.SetIME(true)
		return 4
	}

	baseOps[0xF3] = func(c *CPU) int { c.ic.SetIME(false); return 1 }
	baseOps[0xFB] = func(c *CPU) int { c.ic.ArmEI(); return 1 }

	baseOps[0x27] = func(c *CPU) int { c.daa(); return 1 }
	baseOps[0x2F] = func(c *CPU) int {
		c.A = ^c.A
		c.SetFlagN(true)
		c.SetFlagH(true)
		return 1
	}
	baseOps[0x37] = func(c *CPU) int {
		c.SetFlagN(false)
		c.SetFlagH(false)
		c.SetFlagC(true)
		return 1
	}
	baseOps[0x3F] = func(c *CPU) int {
		c.SetFlagN(false)
		c.SetFlagH(false)
		c.SetFlagC(!c.FlagC())
		return 1
	}
}

// daa adjusts A into packed BCD after an ADD/ADC/SUB/SBC, per spec.md
// §4.7's "follows the source's correction table" contract.
func (c *CPU) daa() {
	a := c.A
	carry := c.FlagC()

	if c.FlagN() {
		adjust := byte(0)
		if c.FlagC() {
			adjust += 0x60
		}
		if c.FlagH() {
			adjust += 0x06
		}
		a -= adjust
	} else {
		adjust := byte(0)
		if c.FlagC() || a > 0x99 {
			adjust += 0x60
			carry = true
		}
		if c.FlagH() || a&0xF > 0x9 {
			adjust += 0x06
		}
		a += adjust
	}

	c.A = a
	c.SetFlagZ(a == 0)
	c.SetFlagH(false)
	c.SetFlagC(carry)
}

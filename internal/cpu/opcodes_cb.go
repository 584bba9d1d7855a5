package cpu

var cbOps [256]opFn

// rotateShiftOps is the CB-prefix row order: RLC,RRC,RL,RR,SLA,SRA,SWAP,SRL.
var rotateShiftOps = [8]func(c *CPU, v byte) byte{
	(*CPU).rlc,
	(*CPU).rrc,
	(*CPU).rl,
	(*CPU).rr,
	(*CPU).sla,
	(*CPU).sra,
	(*CPU).swap,
	(*CPU).srl,
}

func init() {
	// 0x00-0x3F: rotate/shift grid, 8 ops x 8 registers.
	for op := byte(0); op < 8; op++ {
		for r := byte(0); r < 8; r++ {
			opcode := op*8 + r
			fn, reg := rotateShiftOps[op], r
			cbOps[opcode] = func(c *CPU) int {
				c.setReg8(reg, fn(c, c.reg8(reg)))
				if reg == 6 {
					return 4
				}
				return 2
			}
		}
	}

	// 0x40-0x7F: BIT b,r.
	for b := byte(0); b < 8; b++ {
		for r := byte(0); r < 8; r++ {
			opcode := 0x40 + b*8 + r
			bit, reg := b, r
			cbOps[opcode] = func(c *CPU) int {
				v := c.reg8(reg)
				set := v&(1<<bit) != 0
				c.SetFlagZ(!set)
				c.SetFlagN(false)
				c.SetFlagH(true)
				if reg == 6 {
					return 3
				}
				return 2
			}
		}
	}

	// 0x80-0xBF: RES b,r.
	for b := byte(0); b < 8; b++ {
		for r := byte(0); r < 8; r++ {
			opcode := 0x80 + b*8 + r
			bit, reg := b, r
			cbOps[opcode] = func(c *CPU) int {
				c.setReg8(reg, c.reg8(reg)&^(1<<bit))
				if reg == 6 {
					return 4
				}
				return 2
			}
		}
	}

	// 0xC0-0xFF: SET b,r.
	for b := byte(0); b < 8; b++ {
		for r := byte(0); r < 8; r++ {
			opcode := 0xC0 + b*8 + r
			bit, reg := b, r
			cbOps[opcode] = func(c *CPU) int {
				c.setReg8(reg, c.reg8(reg)|(1<<bit))
				if reg == 6 {
					return 4
				}
				return 2
			}
		}
	}
}
